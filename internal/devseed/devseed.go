// Package devseed loads a small sample catalogue for local development.
// Everything goes through the use-case layer, so member passwords are hashed.
package devseed

import (
	"context"
	"fmt"

	"github.com/tinoosan/booksapi/internal/library"
	"github.com/tinoosan/booksapi/internal/service/adherent"
	"github.com/tinoosan/booksapi/internal/service/author"
	"github.com/tinoosan/booksapi/internal/service/book"
	"github.com/tinoosan/booksapi/internal/service/loan"
)

// Services are the use-cases the seed writes through.
type Services struct {
	Authors   author.Service
	Books     book.Service
	Adherents adherent.Service
	Loans     loan.Service
}

// Credential is a seeded login with its plaintext password.
type Credential struct {
	Login    string
	Password string
	ID       string
}

// Result lists the ids created by Run.
type Result struct {
	Authors []library.Author
	Books   []library.Book
	Members []Credential
	Loans   []library.Loan
}

func strPtr(s string) *string { return &s }

var authors = []library.Author{
	{FirstName: "George", LastName: "Orwell", Email: "orwell@example.com", Nationality: "British"},
	{FirstName: "Jane", LastName: "Austen", Email: "austen@example.com", Nationality: "British"},
	{FirstName: "Ernest", LastName: "Hemingway", Email: "hemingway@example.com", Nationality: "American"},
	{FirstName: "Mark", LastName: "Twain", Email: "twain@example.com", Nationality: "American"},
}

// books reference authors by position in authors.
var books = []struct {
	library.Book
	author int
}{
	{library.Book{Title: "Introduction to Data Science", Description: strPtr("A comprehensive guide to data science principles and applications."), Location: "Shelf A1", Label: "Data Science Basics", Type: library.BookTypeDataScience, PublishDate: "2021-05-15", Publisher: "Springer", Language: "English", Link: "https://example.com/data-science"}, 2},
	{library.Book{Title: "Modern Web Development", Description: strPtr("Exploring the latest trends in front-end and back-end web development."), Location: "Shelf B3", Label: "Web Technologies", Type: library.BookTypeWeb, PublishDate: "2023-01-20", Publisher: "O'Reilly", Language: "English", Link: "https://example.com/web-development"}, 1},
	{library.Book{Title: "Linear Algebra and Its Applications", Description: strPtr("An essential textbook for students and researchers in mathematics."), Location: "Shelf C2", Label: "Mathematical Foundations", Type: library.BookTypeAlgebra, PublishDate: "2019-09-10", Publisher: "Pearson", Language: "English", Link: "https://example.com/linear-algebra"}, 0},
	{library.Book{Title: "Optimization Techniques in Machine Learning", Description: strPtr("A deep dive into optimization methods used in AI and ML."), Location: "Shelf D5", Label: "Advanced Optimization", Type: library.BookTypeOptimization, PublishDate: "2022-07-12", Publisher: "MIT Press", Language: "English", Link: "https://example.com/optimization-ml"}, 1},
	{library.Book{Title: "The Art of Philosophy", Description: strPtr("Exploring fundamental philosophical questions and theories."), Location: "Shelf E1", Label: "Philosophy Insights", Type: library.BookTypePhilosophy, PublishDate: "2018-03-25", Publisher: "Oxford University Press", Language: "French", Link: "https://example.com/philosophy"}, 3},
	{library.Book{Title: "Classic Literary Works", Description: strPtr("A collection of timeless literary masterpieces."), Location: "Shelf F4", Label: "Literary Classics", Type: library.BookTypeLiterary, PublishDate: "2015-11-30", Publisher: "Penguin Books", Language: "English", Link: "https://example.com/literary-classics"}, 2},
	{library.Book{Title: "Operating System Concepts", Description: strPtr("An introduction to modern operating system principles."), Location: "Shelf G6", Label: "System Programming", Type: library.BookTypeSystem, PublishDate: "2020-04-18", Publisher: "Wiley", Language: "English", Link: "https://example.com/os-concepts"}, 1},
	{library.Book{Title: "Computer Networks: A Systems Approach", Description: strPtr("A detailed study on networking principles and applications."), Location: "Shelf H2", Label: "Networking Basics", Type: library.BookTypeNetwork, PublishDate: "2021-09-05", Publisher: "Morgan Kaufmann", Language: "English", Link: "https://example.com/computer-networks"}, 0},
	{library.Book{Title: "Fundamentals of Physics", Description: strPtr("A comprehensive guide to classical and modern physics."), Location: "Shelf I3", Label: "Physics Essentials", Type: library.BookTypePhysic, PublishDate: "2017-06-22", Publisher: "McGraw-Hill", Language: "English", Link: "https://example.com/fundamentals-physics"}, 3},
	{library.Book{Title: "Principles of Chemistry", Description: strPtr("An in-depth look at chemical reactions and molecular structures."), Location: "Shelf J1", Label: "Chemistry Principles", Type: library.BookTypeChemistry, PublishDate: "2016-12-10", Publisher: "Pearson", Language: "English", Link: "https://example.com/chemistry"}, 2},
	{library.Book{Title: "Introduction to Optics", Description: strPtr("A study on the behavior and properties of light."), Location: "Shelf K4", Label: "Optical Physics", Type: library.BookTypeOptic, PublishDate: "2018-08-14", Publisher: "Cambridge University Press", Language: "English", Link: "https://example.com/optics"}, 1},
	{library.Book{Title: "Electronic Circuits and Applications", Description: strPtr("A hands-on guide to designing and analyzing electronic circuits."), Location: "Shelf L5", Label: "Electronics Engineering", Type: library.BookTypeElectronic, PublishDate: "2019-03-29", Publisher: "Prentice Hall", Language: "English", Link: "https://example.com/electronics"}, 0},
}

var members = []library.AdherentInput{
	{FirstName: "Alice", LastName: "Smith", MembershipNumber: "MEM001", Login: "asmith", Password: "password1", Role: library.RoleProfessor},
	{FirstName: "Bob", LastName: "Brown", MembershipNumber: "MEM002", Login: "bbrown", Password: "password2", Role: library.RoleLibrarian},
	{FirstName: "Charlie", LastName: "Davis", MembershipNumber: "MEM003", Login: "cdavis", Password: "password3", Role: library.RoleStudent},
}

// loans reference books and members by position.
var loans = []struct {
	loanDate, returnDate string
	book, member         int
}{
	{"2012-10-10", "2012-10-27", 0, 0},
	{"2024-12-10", "2025-01-10", 1, 0},
	{"2024-10-06", "2024-12-30", 0, 1},
	{"2012-10-10", "2012-10-27", 1, 0},
}

// Run inserts the sample catalogue. It does not check for existing data;
// running it twice duplicates every document.
func Run(ctx context.Context, svc Services) (Result, error) {
	var res Result
	for _, a := range authors {
		created, err := svc.Authors.Create(ctx, a)
		if err != nil {
			return res, fmt.Errorf("seed author %s: %w", a.LastName, err)
		}
		res.Authors = append(res.Authors, created)
	}
	for _, b := range books {
		in := b.Book
		in.AuthorID = res.Authors[b.author].ID
		created, err := svc.Books.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("seed book %q: %w", in.Title, err)
		}
		res.Books = append(res.Books, created)
	}
	for _, m := range members {
		created, err := svc.Adherents.Create(ctx, m)
		if err != nil {
			return res, fmt.Errorf("seed adherent %s: %w", m.Login, err)
		}
		res.Members = append(res.Members, Credential{Login: m.Login, Password: m.Password, ID: created.ID})
	}
	for _, l := range loans {
		ret := library.Date(l.returnDate)
		created, err := svc.Loans.Create(ctx, library.Loan{
			LoanDate:   library.Date(l.loanDate),
			ReturnDate: &ret,
			BookID:     res.Books[l.book].ID,
			AdherentID: res.Members[l.member].ID,
		})
		if err != nil {
			return res, fmt.Errorf("seed loan: %w", err)
		}
		res.Loans = append(res.Loans, created)
	}
	return res, nil
}

// IDs flattens the result into a name to id map for structured logging.
func (r Result) IDs() map[string]string {
	ids := make(map[string]string, len(r.Authors)+len(r.Members))
	for _, a := range r.Authors {
		ids["author_"+a.LastName] = a.ID
	}
	for _, m := range r.Members {
		ids["adherent_"+m.Login] = m.ID
	}
	if len(r.Books) > 0 {
		ids["first_book"] = r.Books[0].ID
	}
	return ids
}

