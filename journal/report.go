package journal

import (
	"bytes"
	"os"
	"text/template"
	"time"

	"challengesim/profile"
	"challengesim/strategy"
)

// AttemptReport is the exportable summary of one challenge attempt:
// the profile, the derived strategy, and where the simulation ended up.
type AttemptReport struct {
	AttemptID string
	Created   time.Time

	Profile  profile.Profile
	Strategy strategy.Strategy

	// Results
	Trades int
	Wins   int
	Losses int

	StartBalance  float64
	FinalBalance  float64
	TargetBalance float64
	MaxWinStreak  int
	MaxLossStreak int
	Passed        bool

	Notes []string
}

// NetPL is the realized profit or loss over the attempt.
func (r *AttemptReport) NetPL() float64 {
	return r.FinalBalance - r.StartBalance
}

// WinRate is the achieved win fraction, 0 when no trades were taken.
func (r *AttemptReport) WinRate() float64 {
	if r.Trades == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Trades)
}

var attemptOrgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

// Org renders the report as an org-mode block.
func (r *AttemptReport) Org() (string, error) {
	t, err := template.New("attempt").Funcs(attemptOrgFuncs).Parse(attemptOrgTemplate)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteOrg renders the report and writes it to path.
func (r *AttemptReport) WriteOrg(path string) error {
	out, err := r.Org()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0644)
}

const attemptOrgTemplate = `
* CHALLENGE: {{.Strategy.Type}} {{if .Passed}}PASSED{{else}}IN PROGRESS{{end}}
:PROPERTIES:
:ATTEMPT_ID:  {{if .AttemptID}}{{.AttemptID}}{{else}}(attempt-id?){{end}}
:STRATEGY:    {{.Strategy.Type}}
:RISK_LEVEL:  {{.Profile.RiskLevel}}
:STYLE:       {{.Profile.TradingStyle}}
:COMMITMENT:  {{.Profile.TimeCommitment}}
:START_BAL:   {{printf "%.2f" .StartBalance}}
:TARGET_BAL:  {{printf "%.2f" .TargetBalance}}
:FINAL_BAL:   {{printf "%.2f" .FinalBalance}}
:NET_PL:      {{printf "%.2f" .NetPL}}
:TRADES:      {{.Trades}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:WIN_RATE:    {{printf "%.2f" (mul100 .WinRate)}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Strategy Parameters
| Parameter            | Value |
|----------------------+-------|
| R:R                  | {{printf "%.2f" .Strategy.RewardRiskRatio}} |
| Risk per Trade %     | {{printf "%.2f" .Strategy.RiskPerTradePct}} |
| Break-even Win Rate  | {{printf "%.2f" .Strategy.BreakEvenWinRate}}% |
| Min Wins Required    | {{.Strategy.MinWinsRequired}} |
| Trades Estimate      | {{.Strategy.TotalTradesEstimate}} |
| Confidence           | {{.Strategy.Confidence}} |

** Performance Summary
- Net P/L:        *{{printf "%.2f" .NetPL}}*
- Win Rate:       *{{printf "%.2f" (mul100 .WinRate)}}%*
- Max Win Streak: *{{.MaxWinStreak}}*
- Max Loss Streak: *{{.MaxLossStreak}}*
- Target {{if .Passed}}reached{{else}}not reached{{end}} at {{printf "%.2f" .TargetBalance}}

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Wins}} |
| Losses  | {{.Losses}} |
| Total   | {{.Trades}} |

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
