package importers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldAlias maps a canonical field onto the input keys accepted for it,
// checked in order.
type FieldAlias struct {
	Field   string
	Aliases []string
}

// AliasTable holds the ordered alias lists for every entity type.
type AliasTable map[EntityType][]FieldAlias

// Lower-case spellings come first, then Title-case, then the forms CSV
// headers take after lower-casing.
var (
	memberAliases = []FieldAlias{
		{Field: "name", Aliases: []string{"name", "Name", "full name", "fullName"}},
		{Field: "email", Aliases: []string{"email", "Email", "e-mail", "E-mail"}},
		{Field: "role", Aliases: []string{"role", "Role"}},
		{Field: "department", Aliases: []string{"department", "Department"}},
		{Field: "year", Aliases: []string{"year", "Year"}},
		{Field: "bio", Aliases: []string{"bio", "Bio"}},
		{Field: "position", Aliases: []string{"position", "Position"}},
		{Field: "skills", Aliases: []string{"skills", "Skills"}},
		{Field: "isActive", Aliases: []string{"isActive", "IsActive", "isactive", "is_active", "active", "Active"}},
		{Field: "github", Aliases: []string{"github", "GitHub", "Github"}},
		{Field: "linkedin", Aliases: []string{"linkedin", "LinkedIn", "Linkedin"}},
		{Field: "twitter", Aliases: []string{"twitter", "Twitter"}},
		{Field: "portfolio", Aliases: []string{"portfolio", "Portfolio"}},
	}

	projectAliases = []FieldAlias{
		{Field: "title", Aliases: []string{"title", "Title"}},
		{Field: "description", Aliases: []string{"description", "Description"}},
		{Field: "category", Aliases: []string{"category", "Category"}},
		{Field: "technologies", Aliases: []string{"technologies", "Technologies"}},
		{Field: "longDescription", Aliases: []string{"longDescription", "LongDescription", "longdescription", "long_description"}},
		{Field: "githubUrl", Aliases: []string{"githubUrl", "GithubUrl", "GitHubUrl", "githuburl", "github_url", "github"}},
		{Field: "liveUrl", Aliases: []string{"liveUrl", "LiveUrl", "liveurl", "live_url"}},
		{Field: "status", Aliases: []string{"status", "Status"}},
		{Field: "featured", Aliases: []string{"featured", "Featured"}},
		{Field: "tags", Aliases: []string{"tags", "Tags"}},
	}

	eventAliases = []FieldAlias{
		{Field: "title", Aliases: []string{"title", "Title"}},
		{Field: "description", Aliases: []string{"description", "Description"}},
		{Field: "category", Aliases: []string{"category", "Category"}},
		{Field: "venue", Aliases: []string{"venue", "Venue", "location", "Location"}},
		{Field: "organizer", Aliases: []string{"organizer", "Organizer"}},
		{Field: "date", Aliases: []string{"date", "Date"}},
		{Field: "time", Aliases: []string{"time", "Time"}},
		{Field: "capacity", Aliases: []string{"capacity", "Capacity"}},
		{Field: "status", Aliases: []string{"status", "Status"}},
		{Field: "featured", Aliases: []string{"featured", "Featured"}},
		{Field: "registrationOpen", Aliases: []string{"registrationOpen", "RegistrationOpen", "registrationopen", "registration_open"}},
		{Field: "tags", Aliases: []string{"tags", "Tags"}},
	}
)

// DefaultAliases returns a fresh copy of the built-in alias table.
func DefaultAliases() AliasTable {
	return AliasTable{
		EntityMember:  cloneAliases(memberAliases),
		EntityProject: cloneAliases(projectAliases),
		EntityEvent:   cloneAliases(eventAliases),
	}
}

func cloneAliases(in []FieldAlias) []FieldAlias {
	out := make([]FieldAlias, len(in))
	for i, fa := range in {
		out[i] = FieldAlias{Field: fa.Field, Aliases: append([]string(nil), fa.Aliases...)}
	}
	return out
}

// Aliases returns the accepted keys for field, or just the field name when
// the table has no entry for it.
func (t AliasTable) Aliases(entity EntityType, field string) []string {
	for _, fa := range t[entity] {
		if fa.Field == field {
			return fa.Aliases
		}
	}
	return []string{field}
}

// AliasOverrides is the on-disk shape of extra aliases:
//
//	member:
//	  skills: [techstack, stack]
//	event:
//	  venue: [room]
type AliasOverrides map[string]map[string][]string

// LoadAliasOverrides reads a YAML alias override file.
func LoadAliasOverrides(path string) (AliasOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file: %w", err)
	}

	var overrides AliasOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse alias file %s: %w", path, err)
	}
	return overrides, nil
}

// Merge appends override aliases after the built-in ones. Entity names and
// fields must already exist in the table. Because CSV headers are
// lower-cased, each alias is also registered in lower case.
func (t AliasTable) Merge(overrides AliasOverrides) error {
	for entityName, fields := range overrides {
		entity, err := ParseEntityType(entityName)
		if err != nil {
			return err
		}
		for field, extra := range fields {
			idx := -1
			for i, fa := range t[entity] {
				if fa.Field == field {
					idx = i
					break
				}
			}
			if idx < 0 {
				return fmt.Errorf("unknown %s field %q in alias overrides", entity, field)
			}
			for _, alias := range extra {
				alias = strings.TrimSpace(alias)
				if alias == "" {
					continue
				}
				t[entity][idx].Aliases = appendUnique(t[entity][idx].Aliases, alias, strings.ToLower(alias))
			}
		}
	}
	return nil
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}
