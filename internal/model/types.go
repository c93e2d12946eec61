package model

// Entity classifies what box an entry goes in.
type Entity string

const (
	EntityProject Entity = "project" // something to finish: has a goal and an end
	EntityLibrary Entity = "library" // knowledge & assets: reference, learn, maintain
	EntityPeople  Entity = "people"  // humans & organizations you interact with
)

// AllEntities returns all defined entity categories.
func AllEntities() []Entity {
	return []Entity{EntityProject, EntityLibrary, EntityPeople}
}

// Valid reports whether the entity is one of the defined categories.
func (e Entity) Valid() bool {
	switch e {
	case EntityProject, EntityLibrary, EntityPeople:
		return true
	}
	return false
}

// Context classifies which half of life an entry belongs to.
type Context string

const (
	ContextWork Context = "work" // career, money, profession, colleagues
	ContextLife Context = "life" // health, family, hobbies, personal finance
)

// AllContexts returns all defined context categories.
func AllContexts() []Context {
	return []Context{ContextWork, ContextLife}
}

// Valid reports whether the context is one of the defined categories.
func (c Context) Valid() bool {
	switch c {
	case ContextWork, ContextLife:
		return true
	}
	return false
}

// InputType tags the source kind of a captured input.
type InputType string

const (
	InputTypeManual InputType = "manual"
	InputTypeText   InputType = "text"
	InputTypeFile   InputType = "file"
	InputTypeImage  InputType = "image"
)

// Valid reports whether the input type is one of the defined kinds.
func (t InputType) Valid() bool {
	switch t {
	case InputTypeManual, InputTypeText, InputTypeFile, InputTypeImage:
		return true
	}
	return false
}

// ProposalStatus is the review state of a proposal.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalApproved ProposalStatus = "approved"
	ProposalRejected ProposalStatus = "rejected"
)

// Terminal reports whether the status permits no further transition.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalApproved || s == ProposalRejected
}

// ProposalType tags what kind of change a proposal suggests.
type ProposalType string

// ProposalNewEntry is the only proposal type the pipeline currently emits.
const ProposalNewEntry ProposalType = "new_entry"

// HistoryAction is the kind of change recorded in an entry's history.
type HistoryAction string

const (
	HistoryCreated  HistoryAction = "created"
	HistoryUpdated  HistoryAction = "updated"
	HistoryAppended HistoryAction = "appended"
)
