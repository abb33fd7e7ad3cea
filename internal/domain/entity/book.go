package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublishedStatus is the catalog visibility of a book.
type PublishedStatus string

const (
	// PublishedStatusDraft keeps a book hidden from the public catalog.
	PublishedStatusDraft PublishedStatus = "draft"
	// PublishedStatusPublished lists a book in the public catalog.
	PublishedStatusPublished PublishedStatus = "published"
)

// IsValid checks if the PublishedStatus is a valid value.
func (s PublishedStatus) IsValid() bool {
	return s == PublishedStatusDraft || s == PublishedStatusPublished
}

// Book is a catalog entry owned by the librarian identified by
// LibrarianEmail. Business fields beyond ownership and visibility are
// carried opaquely for the storefront.
type Book struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name               string             `bson:"name" json:"name"`
	AuthorName         string             `bson:"author_name,omitempty" json:"author_name,omitempty"`
	Price              string             `bson:"price" json:"price"`
	Image              string             `bson:"image,omitempty" json:"image,omitempty"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	LibrarianEmail     string             `bson:"librarian_email" json:"librarian_email"`
	LibrarianName      string             `bson:"librarian_name,omitempty" json:"librarian_name,omitempty"`
	PublishedStatus    PublishedStatus    `bson:"published_status" json:"published_status"`
	AddedToLibraryDate time.Time          `bson:"addedToLibraryDate" json:"addedToLibraryDate"`
}
