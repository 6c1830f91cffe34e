// Package library holds the domain model of the books API: the wire
// representations exchanged over HTTP and the documents persisted by the
// store, with explicit conversions between the two.
package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/tinoosan/booksapi/internal/errs"
)

// Role is the membership category of an adherent.
type Role string

const (
	RoleProfessor Role = "professor"
	RoleLibrarian Role = "librarian"
	RoleStudent   Role = "student"
)

// Roles lists every accepted Role in display order.
var Roles = []Role{RoleProfessor, RoleLibrarian, RoleStudent}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleProfessor, RoleLibrarian, RoleStudent:
		return true
	}
	return false
}

// UnmarshalText rejects unknown roles at decode time.
func (r *Role) UnmarshalText(b []byte) error {
	v := Role(b)
	if !v.IsValid() {
		return fmt.Errorf("%w: unknown role %q", errs.ErrInvalid, string(b))
	}
	*r = v
	return nil
}

// BookType is the subject category of a book.
type BookType string

const (
	BookTypeDataScience  BookType = "datascience"
	BookTypeWeb          BookType = "web"
	BookTypeAlgebra      BookType = "algebra"
	BookTypeOptimization BookType = "optimization"
	BookTypePhilosophy   BookType = "phylosophy"
	BookTypeLiterary     BookType = "literary"
	BookTypeSystem       BookType = "system"
	BookTypeNetwork      BookType = "network"
	BookTypePhysic       BookType = "physic"
	BookTypeChemistry    BookType = "chemistry"
	BookTypeOptic        BookType = "optic"
	BookTypeElectronic   BookType = "electronic"
)

// BookTypes lists every accepted BookType in display order.
var BookTypes = []BookType{
	BookTypeDataScience, BookTypeWeb, BookTypeAlgebra, BookTypeOptimization,
	BookTypePhilosophy, BookTypeLiterary, BookTypeSystem, BookTypeNetwork,
	BookTypePhysic, BookTypeChemistry, BookTypeOptic, BookTypeElectronic,
}

// IsValid reports whether t is one of the known book types.
func (t BookType) IsValid() bool {
	for _, v := range BookTypes {
		if v == t {
			return true
		}
	}
	return false
}

// UnmarshalText rejects unknown book types at decode time.
func (t *BookType) UnmarshalText(b []byte) error {
	v := BookType(b)
	if !v.IsValid() {
		return fmt.Errorf("%w: unknown book type %q", errs.ErrInvalid, string(b))
	}
	*t = v
	return nil
}

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Date is a calendar date rendered as YYYY-MM-DD.
type Date string

// ParseDate validates s as a calendar date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", errs.ErrInvalid, s)
	}
	return Date(s), nil
}

// UnmarshalText validates the date at decode time.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) String() string { return string(d) }

// Author is the wire representation of an author.
type Author struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Nationality string `json:"nationality"`
}

// Validate checks that every field of a create/update payload is present.
func (a Author) Validate() error {
	return requireFields(
		field{"first_name", a.FirstName},
		field{"last_name", a.LastName},
		field{"email", a.Email},
		field{"nationality", a.Nationality},
	)
}

// Book is the wire representation of a book. AuthorID is a weak reference.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Location    string   `json:"location"`
	Label       string   `json:"label"`
	Type        BookType `json:"type"`
	PublishDate Date     `json:"publishDate"`
	Publisher   string   `json:"publisher"`
	Language    string   `json:"language"`
	Link        string   `json:"link"`
	AuthorID    string   `json:"author_id"`
}

// Validate checks required fields and the enum/date formats.
func (b Book) Validate() error {
	if err := requireFields(
		field{"title", b.Title},
		field{"location", b.Location},
		field{"label", b.Label},
		field{"type", string(b.Type)},
		field{"publishDate", string(b.PublishDate)},
		field{"publisher", b.Publisher},
		field{"language", b.Language},
		field{"link", b.Link},
		field{"author_id", b.AuthorID},
	); err != nil {
		return err
	}
	if !b.Type.IsValid() {
		return fmt.Errorf("%w: unknown book type %q", errs.ErrInvalid, b.Type)
	}
	if _, err := ParseDate(string(b.PublishDate)); err != nil {
		return err
	}
	return nil
}

// Adherent is the wire representation of a member. It has no password field.
type Adherent struct {
	ID               string `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	MembershipNumber string `json:"membership_number"`
	Login            string `json:"login"`
	Role             Role   `json:"role"`
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// AdherentInput is the inbound payload for creating or replacing a member.
type AdherentInput struct {
	FirstName        string
	LastName         string
	MembershipNumber string
	Login            string
	Password         string
	Role             Role
}

// Validate checks every field except Password, whose requirement depends on the operation.
func (in AdherentInput) Validate() error {
	if err := requireFields(
		field{"first_name", in.FirstName},
		field{"last_name", in.LastName},
		field{"membership_number", in.MembershipNumber},
		field{"login", in.Login},
		field{"role", string(in.Role)},
	); err != nil {
		return err
	}
	if !in.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", errs.ErrInvalid, in.Role)
	}
	if len(in.Password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", errs.ErrInvalid, MaxPasswordBytes)
	}
	return nil
}

// Loan is the wire representation of a loan. A nil ReturnDate means not yet returned.
type Loan struct {
	ID         string `json:"id"`
	LoanDate   Date   `json:"loanDate"`
	ReturnDate *Date  `json:"returnDate"`
	BookID     string `json:"book_id"`
	AdherentID string `json:"adherent_id"`
}

// Validate checks required fields and date formats.
func (l Loan) Validate() error {
	if err := requireFields(
		field{"loanDate", string(l.LoanDate)},
		field{"book_id", l.BookID},
		field{"adherent_id", l.AdherentID},
	); err != nil {
		return err
	}
	if _, err := ParseDate(string(l.LoanDate)); err != nil {
		return err
	}
	if l.ReturnDate != nil {
		if _, err := ParseDate(string(*l.ReturnDate)); err != nil {
			return err
		}
	}
	return nil
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", errs.ErrInvalid, strings.Join(missing, ", "))
	}
	return nil
}
