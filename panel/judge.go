package panel

import (
	"fmt"
	"math"

	"github.com/dojsystem/process-api/models"
)

// CasesPerPage bounds how many case embeds fit in a single overview message.
const CasesPerPage = 3

// PageCount returns how many overview pages n cases occupy. Zero cases is
// still a single (empty) page.
func PageCount(n int) int {
	if n == 0 {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(CasesPerPage)))
}

// BuildJudgeOverview renders one page of a judge's active caseload. Pages are
// zero-indexed; out-of-range pages clamp to the last one.
func BuildJudgeOverview(cases []models.Case, judgeTag string, page int) Message {
	total := PageCount(len(cases))
	if page < 0 {
		page = 0
	}
	if page >= total {
		page = total - 1
	}

	if len(cases) == 0 {
		return Message{
			Embeds: []Embed{{
				Title:       "Meus Processos",
				Description: "Nenhum processo ativo sob sua condução no momento.",
				Color:       "#95a5a6",
			}},
		}
	}

	start := page * CasesPerPage
	end := start + CasesPerPage
	if end > len(cases) {
		end = len(cases)
	}

	msg := Message{
		Content: fmt.Sprintf("**Meus Processos** — %s (%d no total, página %d/%d)", judgeTag, len(cases), page+1, total),
	}
	for i := start; i < end; i++ {
		msg.Embeds = append(msg.Embeds, BuildCaseEmbed(&cases[i]))
	}

	if total > 1 {
		msg.Actions = []ActionRow{{
			Buttons: []Button{
				{ID: fmt.Sprintf("judge_cases_prev_%d", page), Label: "◀️ Anterior", Style: StyleSecondary, Disabled: page == 0},
				{ID: fmt.Sprintf("judge_cases_next_%d", page), Label: "Próxima ▶️", Style: StyleSecondary, Disabled: page == total-1},
			},
		}}
	}
	return msg
}
