package views

import "time"

// Chrome is the site-wide frame around every page: navbar, sidebar, panels
// and the labels they show. It is derived once from the site configuration.
type Chrome struct {
	Title       string
	Description string
	LogoText    string
	LogoLight   string
	LogoDark    string
	IconURL     string

	HideNavbar  string // "always", "auto" or "never"
	SocialLinks []SocialLink
	Nav         []NavGroup

	Outline         bool
	OutlineTitle    string
	PrevPageText    string
	NextPageText    string
	LastUpdated     bool
	LastUpdatedText string
	EditLinkText    string
	EditLinkBase    string

	ContentAnimation    bool
	AppearanceAnimation bool
	ScrollToTop         bool

	// Per-request values.
	Dark      bool
	CSRFToken string
}

// SocialLink is an icon link in the navbar.
type SocialLink struct {
	Icon string
	URL  string
}

// NavGroup is one sidebar section; the root group has an empty Title.
type NavGroup struct {
	Title string
	Items []NavItem
}

// NavItem is a sidebar entry.
type NavItem struct {
	Title  string
	URL    string
	Active bool
}

// Heading is an outline entry.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// PageView carries one rendered page into the layout.
type PageView struct {
	Title       string
	Description string
	URL         string
	HTML        string
	SourcePath  string // slash-separated, relative to the content root
	Headings    []Heading
	LastUpdated time.Time
	Prev        *NavItem
	Next        *NavItem
}
