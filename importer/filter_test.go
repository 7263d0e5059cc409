package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterReferences(t *testing.T) {
	f := &Frame{
		Columns: []string{"unitid", "fees"},
		Rows: [][]any{
			{int64(100654), 1.0},
			{int64(999999), 2.0},
			{nil, 3.0},
			{100663.0, 4.0},
		},
	}
	valid := IDSet{100654: {}, 100663: {}}

	kept, rejected := FilterReferences(f, "unitid", valid)

	assert.Equal(t, [][]any{{int64(100654), 1.0}, {100663.0, 4.0}}, kept.Rows)
	assert.Equal(t, f.Columns, kept.Columns)
	assert.Equal(t, []Rejection{
		{Row: []any{int64(999999), 2.0}, Reason: ReasonUnknownKey},
		{Row: []any{nil, 3.0}, Reason: ReasonMissingKey},
	}, rejected)
}

func TestFilterReferences_NoKeyColumnRejectsAll(t *testing.T) {
	f := &Frame{Columns: []string{"fees"}, Rows: [][]any{{1.0}, {2.0}}}

	kept, rejected := FilterReferences(f, "unitid", IDSet{1: {}})

	assert.Zero(t, kept.Len())
	assert.Len(t, rejected, 2)
}

func TestDedupeKeys_AcrossChunks(t *testing.T) {
	seen := make(IDSet)
	first := &Frame{Columns: []string{"unitid"}, Rows: [][]any{{int64(1)}, {int64(2)}, {int64(1)}}}
	second := &Frame{Columns: []string{"unitid"}, Rows: [][]any{{int64(2)}, {nil}, {int64(3)}}}

	kept, rejected := DedupeKeys(first, "unitid", seen)
	assert.Equal(t, 2, kept.Len())
	assert.Equal(t, []Rejection{{Row: []any{int64(1)}, Reason: ReasonDuplicateKey}}, rejected)

	kept, rejected = DedupeKeys(second, "unitid", seen)
	assert.Equal(t, [][]any{{int64(3)}}, kept.Rows)
	assert.Len(t, rejected, 2)
	assert.Len(t, seen, 3)
}

func TestDropIncomplete(t *testing.T) {
	f := &Frame{Columns: []string{"unitid", "name"}, Rows: [][]any{{int64(1), "A"}, {int64(2), nil}}}

	kept, rejected := DropIncomplete(f, []string{"name", "absent"})
	assert.Equal(t, [][]any{{int64(1), "A"}}, kept.Rows)
	assert.Equal(t, ReasonMissingRequired, rejected[0].Reason)

	same, none := DropIncomplete(f, nil)
	assert.Same(t, f, same)
	assert.Empty(t, none)
}
