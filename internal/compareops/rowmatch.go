package compareops

import (
	"time"

	"github.com/JustUsingaWebsite/data-compare/internal/extract"
	"github.com/JustUsingaWebsite/data-compare/internal/types"
	"github.com/JustUsingaWebsite/data-compare/internal/utils"
)

// --- request/response types for the row-match strategy ---

type RowMatchOptions struct {
	Key extract.Key `json:"key"`
}

type RowMatchRequest struct {
	Operation    string              `json:"operation"`
	Options      RowMatchOptions     `json:"options"`
	Origin       types.TableData     `json:"origin"`
	TargetValues map[string]struct{} `json:"-"`
}

type RowMatchResponse struct {
	Operation string              `json:"operation"`
	Summary   types.ResultSummary `json:"summary"`
	Matched   types.TableData     `json:"matched"`
	Result    types.TableData     `json:"result"`
	Error     *string             `json:"error"`
}

// RowMatch marks an origin row matched when any of its cells, trimmed,
// textually equals a member of the validated target set. The comparison
// is raw cell text against validated values on purpose; the origin side
// is not re-validated against the key's pattern. Result holds the
// unmatched rows with their original columns; Matched holds the rest
// for reporting.
func RowMatch(req RowMatchRequest) (RowMatchResponse, error) {
	var res RowMatchResponse
	res.Operation = req.Operation
	start := time.Now()

	// Key is not used for matching here, but an unsupported key must
	// still halt before any rows are compared.
	if _, err := extract.Pattern(req.Options.Key); err != nil {
		return rowMatchErr(res, err.Error()), err
	}

	header := utils.CopyRow(req.Origin.Header)
	matchedRows := make([][]string, 0, len(req.Origin.Rows))
	missingRows := make([][]string, 0, len(req.Origin.Rows))

	for _, row := range req.Origin.Rows {
		matched := false
		for _, cell := range row {
			if _, ok := req.TargetValues[utils.TrimCell(cell)]; ok {
				matched = true
				break
			}
		}
		if matched {
			matchedRows = append(matchedRows, utils.CopyRow(row))
		} else {
			missingRows = append(missingRows, utils.CopyRow(row))
		}
	}

	res.Matched = types.TableData{
		HasHeader: req.Origin.HasHeader,
		Header:    header,
		Rows:      matchedRows,
	}
	res.Result = types.TableData{
		HasHeader: req.Origin.HasHeader,
		Header:    utils.CopyRow(header),
		Rows:      missingRows,
	}
	res.Summary = types.ResultSummary{
		Processed:  len(req.Origin.Rows),
		Matched:    len(matchedRows),
		Missing:    len(missingRows),
		DurationMS: time.Since(start).Milliseconds(),
	}
	res.Error = nil
	return res, nil
}

func rowMatchErr(r RowMatchResponse, msg string) RowMatchResponse {
	r.Error = &msg
	return r
}
