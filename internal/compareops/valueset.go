package compareops

import (
	"sort"
	"time"

	"github.com/JustUsingaWebsite/data-compare/internal/extract"
	"github.com/JustUsingaWebsite/data-compare/internal/types"
	"github.com/JustUsingaWebsite/data-compare/internal/utils"
)

// --- request/response types for the value-set strategy ---

type ValueSetOptions struct {
	Key extract.Key `json:"key"`
}

type ValueSetRequest struct {
	Operation    string              `json:"operation"`
	Options      ValueSetOptions     `json:"options"`
	Origin       types.TableData     `json:"origin"`
	TargetValues map[string]struct{} `json:"-"`
}

type ValueSetResponse struct {
	Operation    string              `json:"operation"`
	Summary      types.ResultSummary `json:"summary"`
	OriginValues []string            `json:"origin_values"`
	Result       types.TableData     `json:"result"`
	Error        *string             `json:"error"`
}

// ValueSet computes the origin values absent from the aggregated target
// value set. Only tokens valid under the key's pattern take part on the
// origin side; the target set is assumed already validated. The result
// is a single-column table headed "Non-Matching <Key>", rows sorted so
// identical inputs always serialize identically.
func ValueSet(req ValueSetRequest) (ValueSetResponse, error) {
	var res ValueSetResponse
	res.Operation = req.Operation
	start := time.Now()

	originValues, err := extract.Values(req.Origin, req.Options.Key)
	if err != nil {
		return valueSetErr(res, err.Error()), err
	}

	missing := make([]string, 0, len(originValues))
	for _, v := range originValues {
		if _, ok := req.TargetValues[v]; !ok {
			missing = append(missing, v)
		}
	}
	sort.Strings(missing)

	rows := make([][]string, 0, len(missing))
	for _, v := range missing {
		rows = append(rows, []string{v})
	}

	res.OriginValues = originValues
	res.Result = types.TableData{
		HasHeader: true,
		Header:    []string{"Non-Matching " + utils.TitleKey(string(req.Options.Key))},
		Rows:      rows,
	}
	res.Summary = types.ResultSummary{
		Processed:  len(originValues),
		Matched:    len(originValues) - len(missing),
		Missing:    len(missing),
		DurationMS: time.Since(start).Milliseconds(),
	}
	res.Error = nil
	return res, nil
}

func valueSetErr(r ValueSetResponse, msg string) ValueSetResponse {
	r.Error = &msg
	return r
}
