// Package dictionary labels the closed enumerations exposed by the API.
package dictionary

import "github.com/tinoosan/booksapi/internal/library"

type Entry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var bookTypeLabels = map[library.BookType]string{
	library.BookTypeDataScience:  "Data Science",
	library.BookTypeWeb:          "Web",
	library.BookTypeAlgebra:      "Algebra",
	library.BookTypeOptimization: "Optimization",
	library.BookTypePhilosophy:   "Philosophy",
	library.BookTypeLiterary:     "Literary",
	library.BookTypeSystem:       "Systems",
	library.BookTypeNetwork:      "Networks",
	library.BookTypePhysic:       "Physics",
	library.BookTypeChemistry:    "Chemistry",
	library.BookTypeOptic:        "Optics",
	library.BookTypeElectronic:   "Electronics",
}

var roleLabels = map[library.Role]string{
	library.RoleProfessor: "Professor",
	library.RoleLibrarian: "Librarian",
	library.RoleStudent:   "Student",
}

// BookTypes lists every book type in declaration order.
func BookTypes() []Entry {
	out := make([]Entry, 0, len(library.BookTypes))
	for _, t := range library.BookTypes {
		out = append(out, Entry{Code: string(t), Label: label(bookTypeLabels[t], string(t))})
	}
	return out
}

// Roles lists every member role in declaration order.
func Roles() []Entry {
	out := make([]Entry, 0, len(library.Roles))
	for _, r := range library.Roles {
		out = append(out, Entry{Code: string(r), Label: label(roleLabels[r], string(r))})
	}
	return out
}

func label(l, code string) string {
	if l == "" {
		return code
	}
	return l
}
