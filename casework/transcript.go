package casework

import (
	"fmt"
	"strings"
	"time"

	"github.com/dojsystem/process-api/models"
	"github.com/dojsystem/process-api/panel"
)

// BuildTranscript renders the case history as plain text for archival when
// the case moves between instances.
func BuildTranscript(c *models.Case) string {
	d := c.Details
	var b strings.Builder

	fmt.Fprintf(&b, "HISTÓRICO DO PROCESSO %s\n", d.CaseNumber)
	fmt.Fprintf(&b, "%s\n", d.Title)
	fmt.Fprintf(&b, "Gerado em %s\n\n", time.Now().UTC().Format("02/01/2006 15:04"))

	fmt.Fprintf(&b, "Status: %s | Instância: %dª | Tipo: %s\n", d.Status, d.Instance, orUnset(d.Type))
	for _, line := range d.PartiesDisplay {
		fmt.Fprintf(&b, "%s\n", line)
	}

	b.WriteString("\nPARTICIPANTES\n")
	for _, key := range models.RoleKeys {
		p, ok := d.Participants[key]
		value := "(vago)"
		if ok {
			value = panel.FormatParticipant(p)
		}
		fmt.Fprintf(&b, "  %s: %s\n", panel.PanelRoles[key].Label, value)
	}

	b.WriteString("\nLINHA DO TEMPO\n")
	for _, entry := range d.Timeline {
		fmt.Fprintf(&b, "  [%s] %s", entry.At.Time().UTC().Format("02/01/2006 15:04"), describeTimelineEntry(entry))
		b.WriteString("\n")
	}
	return b.String()
}

func describeTimelineEntry(entry models.TimelineEntry) string {
	switch entry.Action {
	case models.TimelineCreated:
		return fmt.Sprintf("processo distribuído por %s", entry.By)
	case models.TimelineEnable:
		return fmt.Sprintf("%s habilitado como %s", entry.By, entry.Role)
	case models.TimelineEscalated:
		return fmt.Sprintf("promovido da %dª para a %dª instância por %s", entry.From, entry.To, entry.By)
	case models.TimelineDetailsUpdated:
		return fmt.Sprintf("dados do processo atualizados por %s", entry.By)
	case models.TimelineNamesUpdated:
		return fmt.Sprintf("nomes das partes atualizados por %s", entry.By)
	case models.TimelineIDsUpdated:
		return fmt.Sprintf("identificações das partes atualizadas por %s", entry.By)
	case models.TimelineIntimationIssued:
		return fmt.Sprintf("intimação emitida por %s para %s (prazo: %d dia(s))", entry.By, entry.Target, entry.DeadlineDays)
	case models.TimelineHearingScheduled:
		return fmt.Sprintf("audiência agendada por %s para %s", entry.By, entry.When.Time().UTC().Format("02/01/2006 15:04"))
	case models.TimelineDocumentProtocols:
		return fmt.Sprintf("documento protocolado por %s", entry.By)
	default:
		return fmt.Sprintf("%s por %s", entry.Action, entry.By)
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(não informado)"
	}
	return s
}
