package models

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestUnitView(t *testing.T) {
	client := "Acme"
	u := Unit{BatchLabel: "LOTE-A", SerialOrigin: "SN-1", ClientName: &client, Status: StatusFinalized}

	v := u.View()
	assert.Equal(t, "Acme", v.ClientName)
	assert.Equal(t, "", v.SerialLocal)
	assert.Len(t, v.Values(), len(ViewColumns))
	assert.Equal(t, "SN-1", v.Values()[5])
	assert.Equal(t, "Finalized", v.Values()[15])
}

func TestViewMatches(t *testing.T) {
	v := View{BatchLabel: "LOTE-A", SerialOrigin: "SN-1", OrderReference: "PED-7", ModelName: "BAL-30"}

	assert.True(t, v.Matches(""))
	assert.True(t, v.Matches("LOTE"))
	assert.True(t, v.Matches("D-7"))
	assert.False(t, v.Matches("lote"))
	assert.False(t, v.Matches("BAL-30"), "model name is not searchable")
}

func TestUnitTableName(t *testing.T) {
	assert.Equal(t, "units", Unit{}.TableName())
}

func TestUnitColumnTypes(t *testing.T) {
	s, err := schema.Parse(&Unit{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	keyType := fmt.Sprintf("varchar(%d)", MaxKeyLength)
	indexed := map[string]bool{"serial_origin": true, "batch_label": true}
	for _, f := range s.Fields {
		switch f.DBName {
		case "id", "status":
			continue
		}
		want := "text"
		if indexed[f.DBName] {
			want = keyType
		}
		assert.Equal(t, want, f.TagSettings["TYPE"], f.DBName)
	}
}
