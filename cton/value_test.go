package cton

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueConstructors(t *testing.T) {
	require.Equal(t, KindNull, Null().Kind())
	require.True(t, Null().IsNull())
	require.True(t, (*Value)(nil).IsNull())

	b, ok := Bool(true).AsBool()
	require.True(t, ok)
	require.True(t, b)

	n, ok := Int(42).AsInt()
	require.True(t, ok)
	require.Equal(t, big.NewInt(42), n)

	f, ok := Decimal(1.5).AsDecimal()
	require.True(t, ok)
	require.Equal(t, 1.5, f)

	s, ok := Str("hi").AsStr()
	require.True(t, ok)
	require.Equal(t, "hi", s)
}

func TestValueObjectSetGet(t *testing.T) {
	obj := Object()
	obj.Set("a", Int(1))
	obj.Set("b", Int(2))
	obj.Set("a", Int(3)) // overwrite, position preserved

	fields, ok := obj.AsObject()
	require.True(t, ok)
	require.Len(t, fields, 2)
	require.Equal(t, "a", fields[0].Key)

	got := obj.Get("a")
	n, _ := got.AsInt()
	require.Equal(t, big.NewInt(3), n)

	require.Nil(t, obj.Get("missing"))
}

func TestValueArrayAppendIndex(t *testing.T) {
	arr := Array()
	arr.Append(Str("x"))
	arr.Append(Str("y"))

	require.Equal(t, 2, arr.Len())
	s, _ := arr.Index(1).AsStr()
	require.Equal(t, "y", s)
	require.Nil(t, arr.Index(5))
}

func TestValueWrongKindAccessors(t *testing.T) {
	v := Str("x")
	_, ok := v.AsInt()
	require.False(t, ok)
	_, ok = v.AsBool()
	require.False(t, ok)
	require.Equal(t, 0, v.Len())
}
