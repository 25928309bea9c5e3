package importers

import (
	"time"

	"github.com/davinci-coder-club/clubsite/internal/entities"
)

// Normalizer maps raw rows onto canonical entities using an alias table.
type Normalizer struct {
	aliases AliasTable
	now     func() time.Time
}

// NewNormalizer creates a normalizer. A nil clock means time.Now.
func NewNormalizer(aliases AliasTable, now func() time.Time) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	if now == nil {
		now = time.Now
	}
	return &Normalizer{aliases: aliases, now: now}
}

// Member normalizes a member row. Social links are also read from a nested
// "social" object when the row carries one.
func (n *Normalizer) Member(row RawRow) *entities.Member {
	m := &entities.Member{
		Name:       n.text(row, EntityMember, "name"),
		Email:      n.text(row, EntityMember, "email"),
		Role:       n.text(row, EntityMember, "role"),
		Department: n.text(row, EntityMember, "department"),
		Year:       n.text(row, EntityMember, "year"),
		Bio:        n.text(row, EntityMember, "bio"),
		Position:   n.text(row, EntityMember, "position"),
		Skills:     ParseArrayField(n.value(row, EntityMember, "skills")),
		IsActive:   ParseBooleanField(n.value(row, EntityMember, "isActive"), true),
	}
	if m.Position == "" {
		m.Position = entities.DefaultMemberPosition
	}

	social, _ := row["social"].(map[string]any)
	socialText := func(field string) string {
		if v := n.text(row, EntityMember, field); v != "" {
			return v
		}
		if social != nil {
			return n.text(RawRow(social), EntityMember, field)
		}
		return ""
	}
	m.Social = entities.SocialLinks{
		GitHub:    socialText("github"),
		LinkedIn:  socialText("linkedin"),
		Twitter:   socialText("twitter"),
		Portfolio: socialText("portfolio"),
	}

	return m
}

func (n *Normalizer) Project(row RawRow) *entities.Project {
	p := &entities.Project{
		Title:           n.text(row, EntityProject, "title"),
		Description:     n.text(row, EntityProject, "description"),
		Category:        n.text(row, EntityProject, "category"),
		Technologies:    ParseArrayField(n.value(row, EntityProject, "technologies")),
		LongDescription: n.text(row, EntityProject, "longDescription"),
		GitHubURL:       n.text(row, EntityProject, "githubUrl"),
		LiveURL:         n.text(row, EntityProject, "liveUrl"),
		Status:          n.text(row, EntityProject, "status"),
		Featured:        ParseBooleanField(n.value(row, EntityProject, "featured"), false),
		Tags:            ParseArrayField(n.value(row, EntityProject, "tags")),
	}
	if p.Category == "" {
		p.Category = entities.DefaultProjectCategory
	}
	if p.Status == "" {
		p.Status = entities.DefaultProjectStatus
	}
	return p
}

func (n *Normalizer) Event(row RawRow) *entities.Event {
	e := &entities.Event{
		Title:            n.text(row, EntityEvent, "title"),
		Description:      n.text(row, EntityEvent, "description"),
		Category:         n.text(row, EntityEvent, "category"),
		Venue:            n.text(row, EntityEvent, "venue"),
		Organizer:        n.text(row, EntityEvent, "organizer"),
		Date:             ParseDate(n.value(row, EntityEvent, "date"), n.now()),
		Time:             n.text(row, EntityEvent, "time"),
		Capacity:         ParseIntField(n.value(row, EntityEvent, "capacity"), entities.DefaultEventCapacity),
		Status:           n.text(row, EntityEvent, "status"),
		Featured:         ParseBooleanField(n.value(row, EntityEvent, "featured"), false),
		RegistrationOpen: ParseBooleanField(n.value(row, EntityEvent, "registrationOpen"), true),
		Tags:             ParseArrayField(n.value(row, EntityEvent, "tags")),
	}
	if e.Category == "" {
		e.Category = entities.DefaultEventCategory
	}
	if e.Organizer == "" {
		e.Organizer = entities.DefaultEventOrganizer
	}
	if e.Time == "" {
		e.Time = entities.DefaultEventTime
	}
	if e.Status == "" {
		e.Status = entities.DefaultEventStatus
	}
	return e
}

// value returns the first non-empty value among field's aliases.
func (n *Normalizer) value(row RawRow, entity EntityType, field string) any {
	for _, key := range n.aliases.Aliases(entity, field) {
		if v, ok := row[key]; ok && !isEmptyValue(v) {
			return v
		}
	}
	return nil
}

func (n *Normalizer) text(row RawRow, entity EntityType, field string) string {
	return stringValue(n.value(row, entity, field))
}
