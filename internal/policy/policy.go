package policy

// Package policy is the single source of truth for who may do what. Every
// handler consults this table through the access service instead of
// re-deriving role checks inline, so the rules cannot drift per endpoint.

type Role string

const (
	Admin    Role = "admin"
	SubAdmin Role = "sub_admin"
	Agent    Role = "agent"
	Client   Role = "client"
)

type Action string

const (
	Create Action = "create"
	Read   Action = "read"
	List   Action = "list"
	Update Action = "update"
	Delete Action = "delete"
)

type Resource string

const (
	User     Resource = "user"
	Balance  Resource = "balance"
	Property Resource = "property"
	Contract Resource = "contract"
	Payment  Resource = "payment"
	Chatroom Resource = "chatroom"
	Message  Resource = "message"
)

// Relationship captures how the actor relates to the target entity. The
// access service computes the flags; the policy only reads them.
type Relationship struct {
	Self   bool // target user is the actor
	Owner  bool // actor owns the target property
	Tenant bool // actor is the target contract's tenant
	Sender bool // actor authored the target message
}

// requirement is the condition a rule imposes before allowing.
type requirement int

const (
	always requirement = iota
	ifSelf
	ifOwner
	ifTenant
	ifSender
)

// rules is the full decision table. Absence means deny: unknown roles,
// actions, or resources always fail closed. Registration and login are
// anonymous and never reach this table.
//
// For Contract/List, a client's ifTenant entry means the listing must be
// scoped to contracts naming the client as tenant; the access service
// satisfies it by filtering rather than denying.
var rules = map[Resource]map[Action]map[Role]requirement{
	User: {
		Create: {Admin: always, SubAdmin: always},
		Read:   {Admin: always, SubAdmin: always, Agent: ifSelf, Client: ifSelf},
		List:   {Admin: always, SubAdmin: always},
		Update: {Admin: always, SubAdmin: always, Agent: ifSelf, Client: ifSelf},
		Delete: {Admin: always, SubAdmin: always, Agent: ifSelf, Client: ifSelf},
	},
	Balance: {
		Read: {Admin: always, SubAdmin: always, Agent: ifSelf, Client: ifSelf},
		List: {Admin: always, SubAdmin: always},
	},
	Property: {
		Create: {Admin: always, SubAdmin: always, Agent: always},
		Read:   {Admin: always, SubAdmin: always, Agent: always, Client: always},
		List:   {Admin: always, SubAdmin: always, Agent: always, Client: always},
		Update: {Admin: always, SubAdmin: always, Agent: ifOwner},
		Delete: {Admin: always, SubAdmin: always, Agent: ifOwner},
	},
	Contract: {
		Create: {Admin: always, SubAdmin: always, Agent: always},
		Read:   {Admin: always, SubAdmin: always, Agent: always, Client: ifTenant},
		List:   {Admin: always, SubAdmin: always, Agent: always, Client: ifTenant},
		Update: {Admin: always, SubAdmin: always, Agent: always},
		Delete: {Admin: always, SubAdmin: always, Agent: always},
	},
	Payment: {
		Create: {Admin: ifSelf, SubAdmin: ifSelf, Agent: ifSelf, Client: ifSelf},
		Read:   {Admin: always, SubAdmin: always, Agent: ifSelf, Client: ifSelf},
		List:   {Admin: always, SubAdmin: always, Agent: ifSelf, Client: ifSelf},
		// Settlement is modeled as an update and reserved for back office;
		// payers only ever create and read.
		Update: {Admin: always, SubAdmin: always},
	},
	Chatroom: {
		Create: {Admin: always, SubAdmin: always, Agent: always, Client: always},
		Read:   {Admin: always, SubAdmin: always, Agent: always, Client: always},
		List:   {Admin: always, SubAdmin: always, Agent: always, Client: always},
		Delete: {Admin: always, SubAdmin: always},
	},
	Message: {
		Create: {Admin: always, SubAdmin: always, Agent: always, Client: always},
		Read:   {Admin: always, SubAdmin: always, Agent: always, Client: always},
		List:   {Admin: always, SubAdmin: always, Agent: always, Client: always},
		Update: {Admin: always, SubAdmin: always, Agent: always, Client: always},
		Delete: {Admin: always, SubAdmin: always, Agent: ifSender, Client: ifSender},
	},
}

// Decide returns true when the role may perform the action on the resource
// given the actor's relationship to it. Deterministic and side-effect free.
func Decide(role Role, action Action, resource Resource, rel Relationship) bool {
	byAction, ok := rules[resource]
	if !ok {
		return false
	}
	byRole, ok := byAction[action]
	if !ok {
		return false
	}
	req, ok := byRole[role]
	if !ok {
		return false
	}
	switch req {
	case always:
		return true
	case ifSelf:
		return rel.Self
	case ifOwner:
		return rel.Owner
	case ifTenant:
		return rel.Tenant
	case ifSender:
		return rel.Sender
	}
	return false
}

// CouldAllow reports whether any relationship at all would let Decide allow.
// The access service uses it to refuse before loading the target, so a
// denied caller cannot probe whether a resource exists.
func CouldAllow(role Role, action Action, resource Resource) bool {
	return Decide(role, action, resource, Relationship{
		Self: true, Owner: true, Tenant: true, Sender: true,
	})
}
