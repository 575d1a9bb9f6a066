package panel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dojsystem/process-api/models"
)

// ParseParticipants turns whatever shape a participant map arrives in into
// the tagged form. It accepts the native typed map, a JSON document (string
// or bytes), or the loose map the legacy exports carry, where a slot may be
// an object, a raw mention or a bare display string. Malformed input yields
// an empty map, never an error.
func ParseParticipants(raw interface{}) map[string]models.Participant {
	out := map[string]models.Participant{}
	switch v := raw.(type) {
	case nil:
		return out
	case map[string]models.Participant:
		for k, p := range v {
			out[k] = p
		}
		return out
	case string:
		return parseParticipantsJSON([]byte(v))
	case []byte:
		return parseParticipantsJSON(v)
	case map[string]interface{}:
		for k, entry := range v {
			if p, ok := coerceParticipant(entry); ok {
				out[k] = p
			}
		}
		return out
	default:
		return out
	}
}

func parseParticipantsJSON(data []byte) map[string]models.Participant {
	if len(data) == 0 {
		return map[string]models.Participant{}
	}
	var loose map[string]interface{}
	if err := json.Unmarshal(data, &loose); err != nil {
		return map[string]models.Participant{}
	}
	return ParseParticipants(loose)
}

// coerceParticipant resolves the legacy three-way value shapes into the
// tagged participant form.
func coerceParticipant(entry interface{}) (models.Participant, bool) {
	switch v := entry.(type) {
	case models.Participant:
		return v, v.ActorID != "" || v.DisplayTag != ""
	case map[string]interface{}:
		p := models.Participant{}
		if id, ok := v["id"].(string); ok {
			p.ActorID = id
		}
		if tag, ok := v["tag"].(string); ok {
			p.DisplayTag = tag
		}
		if p.ActorID == "" {
			if mention, ok := v["mention"].(string); ok {
				p.ActorID = mentionID(mention)
				if p.DisplayTag == "" {
					p.DisplayTag = mention
				}
			} else if name, ok := v["name"].(string); ok {
				p.DisplayTag = name
			}
		}
		return p, p.ActorID != "" || p.DisplayTag != ""
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return models.Participant{}, false
		}
		if id := mentionID(s); id != "" {
			return models.Participant{ActorID: id}, true
		}
		return models.Participant{DisplayTag: s}, true
	default:
		return models.Participant{}, false
	}
}

// mentionID extracts the actor id from a "<@123>" mention, or "".
func mentionID(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<@") || !strings.HasSuffix(s, ">") {
		return ""
	}
	id := strings.TrimSuffix(strings.TrimPrefix(s, "<@"), ">")
	id = strings.TrimPrefix(id, "!")
	if id == "" || strings.ContainsFunc(id, func(r rune) bool { return r < '0' || r > '9' }) {
		return ""
	}
	return id
}

// FormatParticipants serializes a participant map to its canonical JSON
// document. ParseParticipants is its inverse for well-formed maps.
func FormatParticipants(participants map[string]models.Participant) string {
	if len(participants) == 0 {
		return "{}"
	}
	b, err := json.Marshal(participants)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// FormatParticipant renders the display string for one slot: a mention with
// the tag in parentheses, a bare mention, or the tag alone.
func FormatParticipant(p models.Participant) string {
	if p.ActorID != "" {
		mention := fmt.Sprintf("<@%s>", p.ActorID)
		if p.DisplayTag != "" {
			return fmt.Sprintf("%s (%s)", mention, p.DisplayTag)
		}
		return mention
	}
	return p.DisplayTag
}

// IsAssigned reports whether the role slot holds anyone.
func IsAssigned(participants map[string]models.Participant, roleKey string) bool {
	p, ok := participants[roleKey]
	if !ok {
		return false
	}
	return p.ActorID != "" || strings.TrimSpace(p.DisplayTag) != ""
}

// AllAssigned reports whether every enrollable role is filled.
func AllAssigned(participants map[string]models.Participant) bool {
	for _, key := range models.RoleKeys {
		if !IsAssigned(participants, key) {
			return false
		}
	}
	return true
}
