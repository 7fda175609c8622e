// Package model defines the items held by the showcase collections: tasks,
// catalogue products and cart entries, together with the drafts and patches
// used to create and modify them.
package model

import (
	"errors"
	"strings"
	"time"
)

// ErrBlankTitle is returned when a task draft has no title after trimming.
var ErrBlankTitle = errors.New("title is required")

// ErrBlankName is returned when a product has no name after trimming.
var ErrBlankName = errors.New("name is required")

// Task is a single entry of the task manager.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemID returns the task id.
func (t Task) ItemID() string { return t.ID }

// DisplayName returns the task title.
func (t Task) DisplayName() string { return t.Title }

// Patched returns a copy of t with the patch fields applied.
// Quantity is ignored for tasks.
func (t Task) Patched(p Patch) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// TaskDraft is the client input for a new task.
type TaskDraft struct {
	Title string `json:"title"`
}

// Validate rejects drafts whose title is blank.
func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrBlankTitle
	}
	return nil
}

// Product is a catalogue item. It doubles as the draft for adding to the cart.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ItemID returns the product id.
func (p Product) ItemID() string { return p.ID }

// DisplayName returns the product name.
func (p Product) DisplayName() string { return p.Name }

// ItemCategory returns the product category.
func (p Product) ItemCategory() string { return p.Category }

// Validate rejects products without a name or id.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrBlankName
	}
	if p.ID == "" {
		return errors.New("id is required")
	}
	return nil
}

// CartEntry is a product in the cart with its quantity. Qty is always >= 1
// for entries present in a cart.
type CartEntry struct {
	Product
	Qty int `json:"qty"`
}

// Patched returns a copy of e with the patch quantity applied.
// Name and completion are fixed for cart entries.
func (e CartEntry) Patched(p Patch) CartEntry {
	if p.Qty != nil {
		e.Qty = *p.Qty
	}
	return e
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Qty       *int    `json:"qty,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil && p.Qty == nil
}

// SetTitle builds a patch that renames a task.
func SetTitle(title string) Patch { return Patch{Title: &title} }

// SetCompleted builds a patch that toggles task completion.
func SetCompleted(completed bool) Patch { return Patch{Completed: &completed} }

// SetQty builds a patch that changes a cart quantity.
func SetQty(qty int) Patch { return Patch{Qty: &qty} }
