package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelStyles(t *testing.T) {
	s := DefaultModelStyles()

	assert.Equal(t, "ICON (DWD)", s.Name("icon_seamless"))
	assert.Equal(t, "GFS (NOAA)", s.Name("gfs_seamless"))
	assert.Equal(t, "ECMWF IFS 0.25", s.Name("ecmwf_ifs025"))
	assert.Equal(t, "my_model", s.Name("my_model"))

	assert.Equal(t, s.Color("my_model"), s.Color("my_model"))
	assert.Equal(t, s.Color("my_model"), DefaultModelStyles().Color("my_model"))
	assert.NotEqual(t, s.Color("icon_seamless"), s.Color("gfs_seamless"))
}

func TestModelStyles_WithDoesNotMutate(t *testing.T) {
	base := DefaultModelStyles()
	next := base.With("icon_seamless", ModelStyle{Name: "ICON", Color: "#000000"})

	assert.Equal(t, "ICON (DWD)", base.Name("icon_seamless"))
	assert.Equal(t, "ICON", next.Name("icon_seamless"))

	var zero ModelStyles
	assert.Equal(t, "x", zero.With("x", ModelStyle{}).Name("x"))
}
