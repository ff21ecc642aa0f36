package theme_test

import (
	"testing"

	"github.com/okian/folio/internal/domain/theme"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a persisted value", t, func() {
		Convey("A valid one wins over the default", func() {
			p := theme.Resolve("Light", theme.Dark)
			So(p.Mode, ShouldEqual, theme.Light)
			So(p.Persisted, ShouldBeTrue)
		})

		Convey("A missing or invalid one uses the default", func() {
			So(theme.Resolve("", theme.Light).Mode, ShouldEqual, theme.Light)
			p := theme.Resolve("sepia", theme.Light)
			So(p.Mode, ShouldEqual, theme.Light)
			So(p.Persisted, ShouldBeFalse)
		})

		Convey("An invalid default resolves to dark", func() {
			So(theme.Resolve("", theme.Mode("neon")).Mode, ShouldEqual, theme.Dark)
		})
	})
}

func TestToggle(t *testing.T) {
	Convey("Given a dark preference", t, func() {
		p := theme.Preference{Mode: theme.Dark}

		Convey("Toggling flips it and marks it persisted", func() {
			next := p.Toggle()
			So(next.Mode, ShouldEqual, theme.Light)
			So(next.Persisted, ShouldBeTrue)
			So(next.Toggle().Mode, ShouldEqual, theme.Dark)
		})

		Convey("The receiver is unchanged", func() {
			_ = p.Toggle()
			So(p.Mode, ShouldEqual, theme.Dark)
		})
	})
}
