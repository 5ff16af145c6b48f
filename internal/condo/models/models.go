// Package models defines the condominium domain entities shared by the
// ledger store, the governance engine and the adapter.
package models

import (
	"strings"
	"time"
)

// Address is a hex-encoded wallet address. Addresses are compared in
// normalized (lowercase) form.
type Address string

// Normalized returns the address lowercased for comparison and storage.
func (a Address) Normalized() Address {
	return Address(strings.ToLower(string(a)))
}

// IsZero reports whether the address is empty or the all-zero hex address.
func (a Address) IsZero() bool {
	s := strings.TrimPrefix(strings.ToLower(string(a)), "0x")
	if s == "" {
		return true
	}
	return strings.Trim(s, "0") == ""
}

func (a Address) String() string { return string(a) }

// Equal compares two addresses ignoring case.
func (a Address) Equal(other Address) bool {
	return a.Normalized() == other.Normalized()
}

// Category classifies what an approved topic does.
type Category int

const (
	CategoryDecision Category = iota
	CategorySpent
	CategoryChangeQuota
	CategoryChangeManager
)

var categoryNames = map[Category]string{
	CategoryDecision:      "DECISION",
	CategorySpent:         "SPENT",
	CategoryChangeQuota:   "CHANGE_QUOTA",
	CategoryChangeManager: "CHANGE_MANAGER",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether c is one of the four fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory maps a category name to its value.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// Status is the lifecycle state of a topic.
type Status int

const (
	StatusIdle Status = iota
	StatusVoting
	StatusApproved
	StatusDenied
	StatusDeleted
	StatusSpent
)

var statusNames = map[Status]string{
	StatusIdle:     "IDLE",
	StatusVoting:   "VOTING",
	StatusApproved: "APPROVED",
	StatusDenied:   "DENIED",
	StatusDeleted:  "DELETED",
	StatusSpent:    "SPENT",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Option is a vote choice.
type Option int

const (
	OptionEmpty Option = iota
	OptionYes
	OptionNo
	OptionAbstention
)

var optionNames = map[Option]string{
	OptionEmpty:      "EMPTY",
	OptionYes:        "YES",
	OptionNo:         "NO",
	OptionAbstention: "ABSTENTION",
}

func (o Option) String() string {
	if name, ok := optionNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether o is a known option, including EMPTY.
func (o Option) Valid() bool {
	_, ok := optionNames[o]
	return ok
}

// ParseOption maps an option name to its value.
func ParseOption(name string) (Option, bool) {
	for o, n := range optionNames {
		if n == name {
			return o, true
		}
	}
	return 0, false
}

// ResidenceID encodes block, floor and unit as block*1000 + floor*100 + unit.
// The set of valid ids is fixed at construction; residences are never
// created or destroyed at runtime.
func ResidenceID(block, floor, unit int) int {
	return block*1000 + floor*100 + unit
}

// Resident associates a wallet with a residence. IsManager is derived on
// read (true only for the current manager's own record) and NextPayment is
// filled from the residence's payment ledger.
type Resident struct {
	Wallet      Address   `json:"wallet"`
	Residence   int       `json:"residence"`
	IsCounselor bool      `json:"is_counselor"`
	IsManager   bool      `json:"is_manager"`
	NextPayment time.Time `json:"next_payment"`
}

// Topic is a proposal subject to the voting workflow, keyed by its title.
type Topic struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Amount      int64     `json:"amount"`
	Responsible Address   `json:"responsible"`
	Status      Status    `json:"status"`
	CreatedDate time.Time `json:"created_date"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// Vote is one residence's choice on a topic. At most one vote exists per
// (topic, residence) pair.
type Vote struct {
	Resident  Address   `json:"resident"`
	Residence int       `json:"residence"`
	Timestamp time.Time `json:"timestamp"`
	Option    Option    `json:"option"`
}

// EventKind tags a domain event emitted by a successful mutating call.
type EventKind string

const (
	EventTopicChanged   EventKind = "TopicChanged"
	EventManagerChanged EventKind = "ManagerChanged"
	EventQuotaChanged   EventKind = "QuotaChanged"
)

// Event records a state change observed by external consumers. Title and
// Status are set for TopicChanged, Manager for ManagerChanged, Quota for
// QuotaChanged.
type Event struct {
	Kind    EventKind `json:"kind"`
	Title   string    `json:"title,omitempty"`
	Status  Status    `json:"status,omitempty"`
	Manager Address   `json:"manager,omitempty"`
	Quota   int64     `json:"quota,omitempty"`
	At      time.Time `json:"at"`
}

// Receipt is the success marker returned by mutating engine calls,
// carrying any emitted domain events.
type Receipt struct {
	Events []Event `json:"events,omitempty"`
}

// ResidentPage is one page of the resident collection. Pages past the end
// contain zero records padded to the page size; Total is always the true
// collection size.
type ResidentPage struct {
	Residents []Resident `json:"residents"`
	Total     int        `json:"total"`
}

// TopicPage is one page of the topic collection, DELETED topics included.
type TopicPage struct {
	Topics []Topic `json:"topics"`
	Total  int     `json:"total"`
}
