package views

import (
	"strings"
	"time"
)

// LastUpdatedLayout is the timestamp format of the last-updated footer.
const LastUpdatedLayout = "2006-01-02 15:04:05"

// EditURL points at the source of a page inside the documentation repository.
// It returns "" when no base is configured.
func EditURL(base, sourcePath string) string {
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(sourcePath, "/")
}

// FormatLastUpdated renders t in local time, or "" for the zero time.
func FormatLastUpdated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(LastUpdatedLayout)
}

// Logo picks the logo variant for the current appearance.
func (c Chrome) Logo() string {
	if c.Dark && c.LogoDark != "" {
		return c.LogoDark
	}
	return c.LogoLight
}

// WithActive returns a copy of the navigation with the entry for url marked.
func WithActive(groups []NavGroup, url string) []NavGroup {
	out := make([]NavGroup, len(groups))
	for i, g := range groups {
		items := make([]NavItem, len(g.Items))
		for j, it := range g.Items {
			it.Active = it.URL == url
			items[j] = it
		}
		out[i] = NavGroup{Title: g.Title, Items: items}
	}
	return out
}

func bodyClass(c Chrome) string {
	var classes []string
	if c.AppearanceAnimation {
		classes = append(classes, "appearance-animation")
	}
	if c.Dark {
		classes = append(classes, "dark")
	}
	return strings.Join(classes, " ")
}
