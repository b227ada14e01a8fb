package report

import (
	"testing"

	"github.com/casualjim/tracked/entity"
	"github.com/casualjim/tracked/pkg/stdx"
	"github.com/casualjim/tracked/prop"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func sample() []entity.EntityChangedProps {
	return []entity.EntityChangedProps{
		{
			EntityID:     "board-1",
			EntityName:   "board",
			ChangedProps: []prop.ChangedProp{{PropName: "title", Value: "Sprint 2"}},
		},
		{
			EntityID:       "card.7",
			EntityName:     "card",
			Order:          stdx.Ptr(2),
			ParentEntityID: "board-1",
			ChangedProps: []prop.ChangedProp{
				{PropName: "title", Value: "Fix | pipes"},
				{PropName: "done", Value: "true"},
			},
		},
	}
}

func TestJSON(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		data, err := JSON(sample())
		require.NoError(t, err)

		doc := gjson.ParseBytes(data)
		assert.Equal(t, int64(2), doc.Get("#").Int())
		assert.Equal(t, "board-1", doc.Get("0.entityId").String())
		assert.False(t, doc.Get("0.order").Exists())
		assert.False(t, doc.Get("0.parentEntityId").Exists())
		assert.Equal(t, int64(2), doc.Get("1.order").Int())
		assert.Equal(t, "done", doc.Get("1.changedProps.1.propName").String())

		var back []entity.EntityChangedProps
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, sample(), back)
	})

	t.Run("nil report", func(t *testing.T) {
		data, err := JSON(nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})
}

func TestPatch(t *testing.T) {
	data, err := Patch(sample())
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))

	assert.Equal(t, "Sprint 2", gjson.GetBytes(data, "board-1.props.title").String())
	assert.Equal(t, "board", gjson.GetBytes(data, "board-1.entityName").String())
	assert.Equal(t, "board-1", gjson.GetBytes(data, `card\.7.parentEntityId`).String())
	assert.Equal(t, int64(2), gjson.GetBytes(data, `card\.7.order`).Int())
	assert.Equal(t, "Fix | pipes", gjson.GetBytes(data, `card\.7.props.title`).String())
	assert.Equal(t, "true", gjson.GetBytes(data, `card\.7.props.done`).String())
}

func TestSchema(t *testing.T) {
	schema := Schema()
	data, err := json.Marshal(schema)
	require.NoError(t, err)

	doc := gjson.ParseBytes(data)
	assert.Equal(t, "array", doc.Get("type").String())
	assert.Equal(t, "object", doc.Get("items.type").String())
	assert.Equal(t, "string", doc.Get("items.properties.entityId.type").String())
	assert.Equal(t, "integer", doc.Get("items.properties.order.type").String())
	assert.Equal(t, "array", doc.Get("items.properties.changedProps.type").String())
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sample())
	assert.Contains(t, md, "### board `board-1`")
	assert.Contains(t, md, "| title | Sprint 2 |")
	assert.Contains(t, md, "- parent: `board-1`")
	assert.Contains(t, md, "- position: 2")
	assert.Contains(t, md, `| title | Fix \| pipes |`)

	assert.Equal(t, "_No changes._\n", Markdown(nil))
}
