package panel

import (
	"fmt"
	"time"

	"github.com/dojsystem/process-api/models"
)

// RoleInfo carries the display label and waiting text for one enrollable role.
type RoleInfo struct {
	Label   string
	Waiting string
}

// PanelRoles describes the three claimable slots in display order.
var PanelRoles = map[string]RoleInfo{
	models.RoleJudge:   {Label: "Juiz", Waiting: "Aguardando habilitação do Juiz."},
	models.RoleAuthor:  {Label: "Defensor do Polo Ativo", Waiting: "Aguardando defensor do Polo Ativo."},
	models.RolePassive: {Label: "Defensor do Polo Passivo", Waiting: "Aguardando defensor do Polo Passivo."},
}

// participantLabels are the labels used inside the case embed.
var participantLabels = map[string]string{
	models.RoleJudge:   "Juiz",
	models.RoleAuthor:  "Advogado Polo Ativo",
	models.RolePassive: "Advogado Polo Passivo",
}

// Field is one labelled value inside an embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is the structured block the sink renders.
type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      string  `json:"footer,omitempty"`
	Timestamp   bool    `json:"timestamp,omitempty"`
}

// Button styles understood by the sink.
const (
	StylePrimary   = "primary"
	StyleSecondary = "secondary"
	StyleDanger    = "danger"
)

// Button is one pressable action.
type Button struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Style    string `json:"style"`
	Disabled bool   `json:"disabled,omitempty"`
}

// SelectOption is one entry of a select menu.
type SelectOption struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Select is a single-choice action menu.
type Select struct {
	ID          string         `json:"id"`
	Placeholder string         `json:"placeholder,omitempty"`
	Options     []SelectOption `json:"options"`
}

// ActionRow groups buttons or one select menu.
type ActionRow struct {
	Buttons []Button `json:"buttons,omitempty"`
	Select  *Select  `json:"select,omitempty"`
}

// Message is the full renderable panel payload.
type Message struct {
	Content string      `json:"content,omitempty"`
	Embeds  []Embed     `json:"embeds,omitempty"`
	Actions []ActionRow `json:"actions,omitempty"`
}

func statusEmoji(status string) string {
	switch status {
	case models.StatusPendente:
		return "🟡"
	case models.StatusAtivo:
		return "🟢"
	case models.StatusArquivado:
		return "⚫"
	case models.StatusSuspenso:
		return "⏸️"
	case models.StatusJulgado:
		return "✅"
	default:
		return "🟡"
	}
}

// BuildPartiesDisplay derives the denormalized human-readable parties list.
func BuildPartiesDisplay(parties models.Parties) []string {
	format := func(pole string, p models.Party) string {
		name := p.Name
		if name == "" {
			name = "—"
		}
		if p.StateID != "" {
			return fmt.Sprintf("%s: %s (ID: %s)", pole, name, p.StateID)
		}
		return fmt.Sprintf("%s: %s", pole, name)
	}
	return []string{
		format("Polo Ativo", parties.Active),
		format("Polo Passivo", parties.Passive),
	}
}

// formatParticipantsField renders the participant block of the case embed.
func formatParticipantsField(participants map[string]models.Participant) string {
	if len(participants) == 0 {
		return "—"
	}
	out := ""
	for _, key := range models.RoleKeys {
		p, ok := participants[key]
		if !ok {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += fmt.Sprintf("**%s**: %s", participantLabels[key], FormatParticipant(p))
	}
	if out == "" {
		return "—"
	}
	return out
}

// BuildCaseEmbed projects the case summary embed.
func BuildCaseEmbed(c *models.Case) Embed {
	d := c.Details
	title := d.Title
	if title == "" {
		title = "Sem título"
	}

	parties := "—"
	if len(d.PartiesDisplay) > 0 {
		out := ""
		for i, p := range d.PartiesDisplay {
			if i > 0 {
				out += "\n"
			}
			out += p
		}
		parties = out
	}

	embed := Embed{
		Title:       fmt.Sprintf("%s — %s", d.CaseNumber, title),
		Color:       "#2F3136",
		Description: d.Description,
		Fields: []Field{
			{Name: "Status", Value: fmt.Sprintf("%s %s", statusEmoji(d.Status), d.Status), Inline: true},
			{Name: "Instância", Value: fmt.Sprintf("%dª Instância", d.Instance), Inline: true},
			{Name: "Tipo", Value: orDash(d.Type), Inline: true},
			{Name: "Partes", Value: parties, Inline: true},
			{Name: "Participantes", Value: formatParticipantsField(d.Participants), Inline: true},
		},
		Footer: fmt.Sprintf("Registrado por %s • %s", orDash(d.CreatedBy.Tag), d.CreatedAt.Time().Format(time.RFC1123)),
	}

	if d.NextHearingAt > 0 {
		embed.Fields = append(embed.Fields, Field{
			Name:   "Próxima Audiência",
			Value:  d.NextHearingAt.Time().Format("02/01/2006 15:04"),
			Inline: true,
		})
	}
	return embed
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// BuildPanelEmbed projects the enrollment panel embed: one field per role,
// showing either the enrolled actor or the waiting placeholder.
func BuildPanelEmbed(participants map[string]models.Participant) Embed {
	embed := Embed{
		Title:       "Painel de Habilitação",
		Color:       "#f1c40f",
		Description: "Clique nos botões abaixo para se habilitar no processo. Somente perfis com os cargos apropriados podem se habilitar.",
	}
	for _, key := range models.RoleKeys {
		info := PanelRoles[key]
		value := info.Waiting
		if IsAssigned(participants, key) {
			value = FormatParticipant(participants[key])
		}
		embed.Fields = append(embed.Fields, Field{Name: info.Label, Value: value, Inline: true})
	}
	return embed
}

// buildJudgeActionsRow is the action menu shown once every role is filled.
func buildJudgeActionsRow(caseID string) []ActionRow {
	return []ActionRow{{
		Select: &Select{
			ID:          "case_actions_" + caseID,
			Placeholder: "Ações disponíveis para o Juiz",
			Options: []SelectOption{
				{Label: "⚖️ Alterar Instância", Value: "alter_instance", Description: "Promover o processo para a próxima instância com o histórico anexado."},
				{Label: "📨 Emitir Intimação", Value: "emit_intimation", Description: "Notificar uma parte com prazo e motivo definidos."},
				{Label: "📅 Agendar Audiência/Julgamento", Value: "schedule_hearing", Description: "Registrar audiência e avisar as partes."},
				{Label: "✏️ Editar Informações do Processo", Value: "edit_case", Description: "Atualizar dados principais do processo."},
			},
		},
	}}
}

// BuildPanelButtons returns claim buttons while roles are missing and the
// judge action menu once all three are filled.
func BuildPanelButtons(caseID string, participants map[string]models.Participant) []ActionRow {
	if AllAssigned(participants) {
		return buildJudgeActionsRow(caseID)
	}
	return []ActionRow{{
		Buttons: []Button{
			{
				ID:       fmt.Sprintf("enable_judge_%s", caseID),
				Label:    "⚖️ Juiz",
				Style:    StyleSecondary,
				Disabled: IsAssigned(participants, models.RoleJudge),
			},
			{
				ID:       fmt.Sprintf("enable_author_%s", caseID),
				Label:    "🛡️ Defensor do Polo Ativo",
				Style:    StylePrimary,
				Disabled: IsAssigned(participants, models.RoleAuthor),
			},
			{
				ID:       fmt.Sprintf("enable_passive_%s", caseID),
				Label:    "🛡️ Defensor do Polo Passivo",
				Style:    StylePrimary,
				Disabled: IsAssigned(participants, models.RolePassive),
			},
		},
	}}
}

// BuildPanelMessage projects the full panel for a case. The projection is a
// pure function of case state; rendering it twice yields the same message.
func BuildPanelMessage(c *models.Case) Message {
	participants := c.Details.Participants
	content := "**PAINEL DE HABILITAÇÃO** — Utilize os botões abaixo para liberar as partes aptas a atuar neste processo."
	if AllAssigned(participants) {
		content = "**PAINEL DE HABILITAÇÃO** — Todas as partes estão habilitadas. Utilize o menu abaixo para acessar as ferramentas do Juiz."
	}
	return Message{
		Content: content,
		Embeds:  []Embed{BuildPanelEmbed(participants), BuildCaseEmbed(c)},
		Actions: BuildPanelButtons(c.ID.Hex(), participants),
	}
}
