package cton

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// These reproduce the concrete seed scenarios named in the spec's
// testable-properties section, inline rather than via external fixture
// files.

func TestGoldenHikesTableExample(t *testing.T) {
	context := Object()
	context.Set("task", Str("Our favorite hikes together"))
	context.Set("location", Str("Boulder"))
	context.Set("season", Str("spring_2025"))

	hike := func(id int64, name string, km float64, gain int64, companion string, sunny bool) *Value {
		v := Object()
		v.Set("id", Int(id))
		v.Set("name", Str(name))
		v.Set("distanceKm", Decimal(km))
		v.Set("elevationGain", Int(gain))
		v.Set("companion", Str(companion))
		v.Set("wasSunny", Bool(sunny))
		return v
	}

	root := Object()
	root.Set("context", context)
	root.Set("friends", Array(Str("ana"), Str("luis"), Str("sam")))
	root.Set("hikes", Array(
		hike(1, "Blue Lake Trail", 7.5, 320, "ana", true),
		hike(2, "Ridge Overlook", 9.2, 540, "luis", false),
		hike(3, "Wildflower Loop", 5.1, 180, "sam", true),
	))

	want := `context(task="Our favorite hikes together",location=Boulder,season=spring_2025)` + "\n" +
		`friends[3]=ana,luis,sam` + "\n" +
		`hikes[3]{id,name,distanceKm,elevationGain,companion,wasSunny}=1,"Blue Lake Trail",7.5,320,ana,true;2,"Ridge Overlook",9.2,540,luis,false;3,"Wildflower Loop",5.1,180,sam,true`

	got, err := Encode(root, DefaultEncodeConfig())
	require.NoError(t, err)
	require.Equal(t, want, string(got))
}

func TestGoldenIntishAndScientificNormalization(t *testing.T) {
	root := Object()
	root.Set("intish", Decimal(1.0))
	root.Set("fraction", Decimal(0.5))
	root.Set("scientific", Decimal(1.2e6))
	root.Set("negative_zero", Decimal(math.Copysign(0, -1)))

	got, err := Encode(root, DefaultEncodeConfig())
	require.NoError(t, err)
	require.Equal(t, "intish=1\nfraction=0.5\nscientific=1200000\nnegative_zero=0", string(got))
}

func TestGoldenNonFiniteFloats(t *testing.T) {
	root := Object()
	root.Set("pos_inf", Decimal(math.Inf(1)))
	root.Set("neg_inf", Decimal(math.Inf(-1)))
	root.Set("not_a_number", Decimal(math.NaN()))

	got, err := Encode(root, DefaultEncodeConfig())
	require.NoError(t, err)
	require.Equal(t, "pos_inf=null\nneg_inf=null\nnot_a_number=null", string(got))
}

func TestGoldenAmbiguousLookingStrings(t *testing.T) {
	root := Object()
	root.Set("bool_string", Str("true"))
	root.Set("numeric_string", Str("007"))
	root.Set("float_like", Str("1e6"))
	root.Set("negative_digits", Str("-5"))

	got, err := Encode(root, DefaultEncodeConfig())
	require.NoError(t, err)
	require.Equal(t, `bool_string="true"`+"\n"+`numeric_string="007"`+"\n"+`float_like="1e6"`+"\n"+`negative_digits="-5"`, string(got))
}

func TestGoldenSeparatorlessConcatenation(t *testing.T) {
	v1, err := Decode([]byte("a=1b=2c=3"), DecodeConfig{})
	require.NoError(t, err)
	a, _ := v1.Get("a").AsInt()
	b, _ := v1.Get("b").AsInt()
	c, _ := v1.Get("c").AsInt()
	require.Equal(t, int64(1), a.Int64())
	require.Equal(t, int64(2), b.Int64())
	require.Equal(t, int64(3), c.Int64())

	v2, err := Decode([]byte("k1=1k2=2k3=3"), DecodeConfig{})
	require.NoError(t, err)
	k1, _ := v2.Get("k1").AsInt()
	k2, _ := v2.Get("k2").AsInt()
	k3, _ := v2.Get("k3").AsInt()
	require.Equal(t, int64(1), k1.Int64())
	require.Equal(t, int64(2), k2.Int64())
	require.Equal(t, int64(3), k3.Int64())
}

func TestGoldenSeparatorlessConcatenationWithNegativeScalar(t *testing.T) {
	v, err := Decode([]byte("a=-5b=1"), DecodeConfig{})
	require.NoError(t, err)
	a, _ := v.Get("a").AsInt()
	b, _ := v.Get("b").AsInt()
	require.Equal(t, int64(-5), a.Int64())
	require.Equal(t, int64(1), b.Int64())
}

func TestGoldenBoundaryErrorCases(t *testing.T) {
	_, err := Decode([]byte("friends[2]=ana"), DecodeConfig{})
	require.Error(t, err)

	_, err = Decode([]byte("rows[1]{id,name}=42"), DecodeConfig{})
	require.Error(t, err)

	_, err = Decode([]byte(`note="unclosed`), DecodeConfig{})
	require.Error(t, err)
}
