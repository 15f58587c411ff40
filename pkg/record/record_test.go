package record_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/restaurants/pkg/record"
)

type member struct {
	ID      int64
	Name    string
	Friends []*member
}

var memberSchema = record.Schema[member]{
	record.Column("id", func(m *member) any { return m.ID }),
	record.Column("name", func(m *member) any { return m.Name }),
	record.HasMany("friends", func(m *member) []*member { return m.Friends }),
}

func (m *member) ToMap(includeRelationships bool) record.Mapping {
	return memberSchema.Map(m, includeRelationships)
}

type club struct {
	ID      int64
	Title   string
	Note    *string
	Members []*member
}

var clubSchema = record.Schema[club]{
	record.Column("id", func(c *club) any { return c.ID }),
	record.Column("title", func(c *club) any { return c.Title }),
	record.Column("note", func(c *club) any { return record.Optional(c.Note) }),
	record.HasMany("members", func(c *club) []*member { return c.Members }),
}

func (c *club) ToMap(includeRelationships bool) record.Mapping {
	return clubSchema.Map(c, includeRelationships)
}

func newClub() *club {
	ann := &member{ID: 1, Name: "Ann"}
	bob := &member{ID: 2, Name: "Bob", Friends: []*member{ann}}
	ann.Friends = []*member{bob}
	return &club{ID: 10, Title: "Lunch", Members: []*member{ann, bob}}
}

func TestMapOmitsRelationsByDefault(t *testing.T) {
	got := newClub().ToMap(false)

	assert.Equal(t, record.Mapping{"id": int64(10), "title": "Lunch", "note": nil}, got)
	assert.NotContains(t, got, "members")
}

func TestMapExpandsRelationsOneLevel(t *testing.T) {
	got := newClub().ToMap(true)

	require.Contains(t, got, "members")
	members, ok := got["members"].([]record.Mapping)
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Equal(t, record.Mapping{"id": int64(1), "name": "Ann"}, members[0])
	assert.Equal(t, record.Mapping{"id": int64(2), "name": "Bob"}, members[1])
	for _, m := range members {
		assert.NotContains(t, m, "friends")
	}
}

func TestMapEmptyRelationIsEmptySequence(t *testing.T) {
	c := &club{ID: 3, Title: "Empty"}

	got := c.ToMap(true)

	assert.Equal(t, []record.Mapping{}, got["members"])

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"title":"Empty","note":null,"members":[]}`, string(raw))
}

func TestMapSkipsNilRelatedRecords(t *testing.T) {
	c := &club{ID: 4, Title: "Sparse", Members: []*member{nil, {ID: 5, Name: "Cy"}, nil}}

	got := c.ToMap(true)

	assert.Equal(t, []record.Mapping{{"id": int64(5), "name": "Cy"}}, got["members"])
	assert.Len(t, c.Members, 3)
}

func TestMapIsRepeatableAndDoesNotMutate(t *testing.T) {
	note := "reserved"
	c := newClub()
	c.Note = &note

	first := c.ToMap(true)
	second := c.ToMap(true)

	assert.Equal(t, first, second)
	assert.Equal(t, "reserved", *c.Note)
	assert.Len(t, c.Members, 2)
	assert.Len(t, c.Members[0].Friends, 1)
	assert.Equal(t, "reserved", first["note"])
}

func TestSchemaDescriptor(t *testing.T) {
	d := clubSchema.Descriptor()

	assert.Equal(t, []string{"id", "title", "note"}, d.Columns)
	assert.Equal(t, []string{"members"}, d.Relations)
}

func TestOptional(t *testing.T) {
	var missing *int
	present := 4

	assert.Nil(t, record.Optional(missing))
	assert.Equal(t, 4, record.Optional(&present))
	assert.Equal(t, "relation", record.KindRelation.String())
}
