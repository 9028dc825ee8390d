package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultRow_InsertionOrder(t *testing.T) {
	row := NewResultRow()
	row.Set("Title", StringValue("Annual Report"))
	row.Set("Size", NumberValue(1024))
	row.Set("Title", StringValue("Updated Title"))

	assert.Equal(t, []string{"Title", "Size"}, row.Fields())
	assert.Equal(t, "Updated Title", row.GetString("Title"))
	assert.Equal(t, 2, row.Len())
}

func TestResultRow_GetMissingField(t *testing.T) {
	row := NewResultRow()

	_, ok := row.Get("Nope")
	assert.False(t, ok)
	assert.Equal(t, "", row.GetString("Nope"))
}

func TestResultRow_MarshalJSON(t *testing.T) {
	row := NewResultRow()
	row.Set("Title", StringValue("Report"))
	row.Set("IsDocument", BoolValue(true))

	raw, err := json.Marshal(row)
	require.NoError(t, err)

	var obj map[string]string
	require.NoError(t, json.Unmarshal(raw, &obj))
	assert.Equal(t, map[string]string{"Title": "Report", "IsDocument": "true"}, obj)
}
