// Package navigation provides the page title, breadcrumbs and in-page
// section anchors handed to the templates.
package navigation

import (
	"strings"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Anchor is a jump target inside the current page.
type Anchor struct {
	ID    string
	Title string
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	Anchors       []Anchor
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
		Anchors:       make([]Anchor, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// AddAnchor adds an in-page anchor. The id is derived from key.
func (c *Context) AddAnchor(key, title string) *Context {
	c.Anchors = append(c.Anchors, Anchor{
		ID:    AnchorID(key),
		Title: title,
	})

	return c
}

// AnchorID returns the html id of the section called key.
func AnchorID(key string) string {
	id := strings.ReplaceAll(strings.ToLower(key), "_", "-")
	if strings.HasPrefix(id, "section-") {
		return id
	}

	return "section-" + id
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
