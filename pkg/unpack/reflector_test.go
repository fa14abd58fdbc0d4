package unpack_test

import (
	"testing"

	"github.com/brimdata/vcl/pkg/unpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Shape interface{ shape() }

type Base struct {
	Name string `json:"name"`
}

type Circle struct {
	Kind   string `json:"kind" unpack:""`
	Radius int    `json:"radius"`
	Base
}

type Group struct {
	Kind   string  `json:"kind" unpack:""`
	Shapes []Shape `json:"shapes"`
	First  Shape   `json:"first"`
	Skip   string  `json:"-"`
}

type Square struct {
	Kind string `json:"kind" unpack:"box"`
	Side *int   `json:"side"`
}

func (*Circle) shape() {}
func (*Group) shape()  {}
func (*Square) shape() {}

var reflector = unpack.New(Circle{}, Group{}, &Square{})

func TestUnmarshal(t *testing.T) {
	var s Shape
	err := reflector.Unmarshal([]byte(`{
		"kind": "Group",
		"shapes": [
			{"kind": "Circle", "radius": 2, "name": "c"},
			{"kind": "box", "side": 3}
		],
		"first": null,
		"Skip": "x"
	}`), &s)
	require.NoError(t, err)
	side := 3
	expected := &Group{
		Kind: "Group",
		Shapes: []Shape{
			&Circle{Kind: "Circle", Radius: 2, Base: Base{Name: "c"}},
			&Square{Kind: "box", Side: &side},
		},
	}
	assert.Equal(t, expected, s)
}

func TestErrors(t *testing.T) {
	var s Shape
	assert.EqualError(t, reflector.Unmarshal([]byte(`{"kind":"Triangle"}`), &s), `unpack: unknown kind "Triangle"`)
	assert.EqualError(t, reflector.Unmarshal([]byte(`{"radius":1}`), &s), `unpack: object for unpack_test.Shape has no "kind" field`)
	assert.EqualError(t, reflector.Unmarshal([]byte(`[1]`), &s), "unpack: expected object for unpack_test.Shape")
	assert.EqualError(t, reflector.Unmarshal([]byte(`{"kind":"Group","shapes":{}}`), &s), "Group.Shapes: unpack: expected array for []unpack_test.Shape")
	assert.Error(t, reflector.Unmarshal([]byte(`{`), &s))
	assert.Error(t, reflector.Unmarshal([]byte(`{}`), s))
}

func TestNewPanics(t *testing.T) {
	assert.Panics(t, func() { unpack.New(Base{}) })
	assert.Panics(t, func() { unpack.New(Circle{}, Circle{}) })
}
