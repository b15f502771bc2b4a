package events

type EventType string

const (
	EventTypePetCreated        EventType = "PET_CREATED"
	EventTypeFed               EventType = "FED"
	EventTypePlayed            EventType = "PLAYED"
	EventTypeChatted           EventType = "CHATTED"
	EventTypeEnteredCritical   EventType = "ENTERED_CRITICAL"
	EventTypeRevived           EventType = "REVIVED"
	EventTypeTraitsRegenerated EventType = "TRAITS_REGENERATED"
)

// EventTypes lista los tipos válidos (para validar filtros).
var EventTypes = []EventType{
	EventTypePetCreated,
	EventTypeFed,
	EventTypePlayed,
	EventTypeChatted,
	EventTypeEnteredCritical,
	EventTypeRevived,
	EventTypeTraitsRegenerated,
}

func (t EventType) Valid() bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

type ActorType string

const (
	ActorTypeOwnerUser ActorType = "OWNER_USER"
	// SYSTEM: sweeper, migración de traits, etc.
	ActorTypeSystem ActorType = "SYSTEM"
)

// SystemActor es el actor de los cambios que no inicia el usuario.
var SystemActor = Actor{Type: ActorTypeSystem, ID: "system"}
