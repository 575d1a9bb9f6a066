package models

// Actor is the identity the chat gateway forwards with every action: who
// clicked, their display tag, and the credential identifiers they hold on
// the platform. Credentials are matched against the configured role map.
type Actor struct {
	ID          string   `json:"id"`
	Tag         string   `json:"tag"`
	Credentials []string `json:"credentials"`
}

// Ref returns the persistable reference for the actor.
func (a Actor) Ref() ActorRef {
	return ActorRef{ID: a.ID, Tag: a.Tag}
}

// HasCredential reports whether the actor holds the given credential id.
// An empty credential id never matches.
func (a Actor) HasCredential(credential string) bool {
	if credential == "" {
		return false
	}
	for _, c := range a.Credentials {
		if c == credential {
			return true
		}
	}
	return false
}
