package prop

import (
	"testing"

	"github.com/casualjim/tracked/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProp_Set(t *testing.T) {
	t.Run("changes value and emits", func(t *testing.T) {
		p := NewProp(events.NewEmitter(), "a")
		var got []string
		p.On(func(e ValueChanged[string]) { got = append(got, e.Value) })

		assert.True(t, p.Set("b"))
		assert.Equal(t, "b", p.Get())
		assert.Equal(t, []string{"b"}, got)
	})

	t.Run("same value is not a change", func(t *testing.T) {
		p := NewProp(events.NewEmitter(), 3)
		calls := 0
		p.On(func(ValueChanged[int]) { calls++ })

		assert.False(t, p.Set(3))
		assert.Zero(t, calls)
	})

	t.Run("silent stores without emitting", func(t *testing.T) {
		p := NewProp(events.NewEmitter(), "a", WithValidators(TextMaxLength(1)))
		calls, violations := 0, 0
		p.On(func(ValueChanged[string]) { calls++ })
		p.ViolationsChanged().On(func([]Violation) { violations++ })

		assert.True(t, p.Set("abc", Silent(true)))
		assert.Equal(t, "abc", p.Get())
		assert.Zero(t, calls)
		assert.Equal(t, 1, violations)
		assert.False(t, p.IsValid())
	})

	t.Run("predicate rejects", func(t *testing.T) {
		p := NewProp(events.NewEmitter(), 1, WithPredicate(func(v int) bool { return v >= 0 }))
		calls := 0
		p.On(func(ValueChanged[int]) { calls++ })

		assert.False(t, p.Set(-1))
		assert.Equal(t, 1, p.Get())
		assert.Zero(t, calls)
		assert.True(t, p.Set(5))
	})

	t.Run("handlers observe the stored value", func(t *testing.T) {
		p := NewProp(events.NewEmitter(), "", WithValidators(TextMinLength(1)))
		var valid bool
		var value string
		p.On(func(ValueChanged[string]) {
			valid = p.IsValid()
			value = p.Get()
		})

		p.Set("x")
		assert.True(t, valid)
		assert.Equal(t, "x", value)
	})
}

func TestProp_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		value any
		want  bool
	}{
		{"boolean accepts bool", KindBoolean, true, true},
		{"boolean rejects string", KindBoolean, "true", false},
		{"string accepts string", KindString, "x", true},
		{"string rejects number", KindString, 1, false},
		{"number accepts int", KindNumber, 4, true},
		{"number accepts float", KindNumber, 1.5, true},
		{"number rejects bool", KindNumber, false, false},
		{"notUndefined rejects nil", KindNotUndefined, nil, false},
		{"notUndefined accepts value", KindNotUndefined, "x", true},
		{"unknown kind accepts everything", Kind("weird"), 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var initial any = "initial"
			p := NewProp(events.NewEmitter(), initial, WithKind[any](tt.kind))
			assert.Equal(t, tt.want, p.Set(tt.value))
		})
	}
}

func TestReadable_Validation(t *testing.T) {
	t.Run("validated on construction", func(t *testing.T) {
		r := NewReadable(events.NewEmitter(), "toolong", WithValidators(TextMaxLength(3)))
		assert.False(t, r.IsValid())
		assert.Equal(t, []Violation{{Result: TextMaxLengthKey}}, r.Violations())
	})

	t.Run("violations are nil when valid", func(t *testing.T) {
		r := NewReadable(events.NewEmitter(), "ok", WithValidators(TextMaxLength(3)))
		assert.True(t, r.IsValid())
		assert.Nil(t, r.Violations())
	})

	t.Run("violations keep rule order", func(t *testing.T) {
		p := NewProp(events.NewEmitter(), "abc", WithValidators(TextMaxLength(1), TextMinLength(5)))
		assert.Equal(t, []Violation{{Result: TextMaxLengthKey}, {Result: TextMinLengthKey}}, p.Violations())
	})

	t.Run("identical violations emit once", func(t *testing.T) {
		p := NewProp(events.NewEmitter(), "", WithValidators(TextMaxLength(2)))
		var emitted [][]Violation
		p.ViolationsChanged().On(func(v []Violation) { emitted = append(emitted, v) })

		p.Set("abc")
		p.Set("abcd")
		p.Set("abcde")
		require.Len(t, emitted, 1)
		assert.Equal(t, []Violation{{Result: TextMaxLengthKey}}, emitted[0])

		p.Set("a")
		require.Len(t, emitted, 2)
		assert.Nil(t, emitted[1])
	})

	t.Run("is defined", func(t *testing.T) {
		p := NewProp[*int](events.NewEmitter(), nil, WithValidators(IsDefined[*int]()))
		assert.False(t, p.IsValid())
		v := 1
		p.Set(&v)
		assert.True(t, p.IsValid())
	})

	t.Run("metadata last rule wins", func(t *testing.T) {
		r := NewReadable(events.NewEmitter(), "", WithValidators(TextMaxLength(3), TextMaxLength(10), TextMinLength(1)))
		v, ok := r.MetadataValue(TextMaxLengthKey)
		require.True(t, ok)
		assert.Equal(t, 10, v)
		v, ok = r.MetadataValue(TextMinLengthKey)
		require.True(t, ok)
		assert.Equal(t, 1, v)
		_, ok = r.MetadataValue("missing")
		assert.False(t, ok)
	})

	t.Run("rule without validate func is ignored", func(t *testing.T) {
		r := NewReadable(events.NewEmitter(), 1, WithValidators(Rule[int]{Metadata: map[string]any{"unit": "kg"}}))
		assert.True(t, r.IsValid())
		v, _ := r.MetadataValue("unit")
		assert.Equal(t, "kg", v)
	})
}

func TestReadable_Serialize(t *testing.T) {
	t.Run("primitives", func(t *testing.T) {
		s, ok := NewReadable(events.NewEmitter(), 12).Serialize()
		assert.True(t, ok)
		assert.Equal(t, "12", s)

		s, ok = NewReadable(events.NewEmitter(), true).Serialize()
		assert.True(t, ok)
		assert.Equal(t, "true", s)
	})

	t.Run("structured values have no default", func(t *testing.T) {
		_, ok := NewReadable(events.NewEmitter(), []string{"a"}).Serialize()
		assert.False(t, ok)
	})

	t.Run("custom serializer", func(t *testing.T) {
		r := NewReadable(events.NewEmitter(), []string{"a", "b"}, WithSerializer(JSONSerializer[[]string]()))
		s, ok := r.Serialize()
		assert.True(t, ok)
		assert.JSONEq(t, `["a","b"]`, s)
	})
}

func TestReadable_Notify(t *testing.T) {
	r := NewReadable(events.NewEmitter(), "x")
	var got []string
	r.On(func(e ValueChanged[string]) { got = append(got, e.Value) })
	r.Notify()
	assert.Equal(t, []string{"x"}, got)
}

func TestEventName(t *testing.T) {
	em := events.NewEmitter()
	p := NewProp(em, 0, WithEventName[int]("counter"))
	listener := events.NewBroker[ValueChanged[int]](em, events.WithEventName("counter"))
	var got int
	listener.On(func(e ValueChanged[int]) { got = e.Value })

	p.Set(7)
	assert.Equal(t, 7, got)
}
