package usecase

// Bulk系の1件ごとの結果。全体は207(Multi-Status)で返す。
type BulkItemResult struct {
	ID      int64  `json:"id"`
	Outcome string `json:"outcome"` // ok / failed
	Error   string `json:"error,omitempty"`
}

type BulkResultOutput struct {
	Results []BulkItemResult `json:"results"`
	//成功した件数
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func buildBulkOutput(results []BulkItemResult) BulkResultOutput {
	out := BulkResultOutput{Results: results}
	for _, r := range results {
		if r.Outcome == "ok" {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	return out
}

func bulkOK(id int64) BulkItemResult {
	return BulkItemResult{ID: id, Outcome: "ok"}
}

func bulkFailed(id int64, msg string) BulkItemResult {
	return BulkItemResult{ID: id, Outcome: "failed", Error: msg}
}

// id重複を除いて正の値だけ残す
func normalizeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
