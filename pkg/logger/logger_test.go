package logger

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
	Named("test").Debug(ctx, "hidden at info level")
}

func TestObservedLogger(t *testing.T) {
	Convey("Given a logger backed by an observer core", t, func() {
		core, logs := observer.New(zapcore.DebugLevel)
		log := New(core).Named("github")

		Convey("When logging with fields and a request id", func() {
			ctx := WithRequestID(context.Background(), "req-1")
			log.Warn(ctx, "fetch failed",
				String("source", "github"),
				Int("status", 502),
				Error(errors.New("boom")),
			)

			Convey("Then the entry carries the fields, the name and the request id", func() {
				So(logs.Len(), ShouldEqual, 1)
				entry := logs.All()[0]
				So(entry.Message, ShouldEqual, "fetch failed")
				So(entry.Level, ShouldEqual, zapcore.WarnLevel)
				So(entry.LoggerName, ShouldEqual, "github")

				fields := entry.ContextMap()
				So(fields["source"], ShouldEqual, "github")
				So(fields["request_id"], ShouldEqual, "req-1")
				So(fields["error"], ShouldEqual, "boom")
			})
		})

		Convey("When deriving a logger with preset fields", func() {
			log.With(String("component", "aggregator")).Info(context.Background(), "built")

			Convey("Then the preset fields are attached", func() {
				So(logs.FilterField(zapcore.Field{Key: "component", Type: zapcore.StringType, String: "aggregator"}).Len(), ShouldEqual, 1)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the global level", t, func() {
		defer func() { _ = SetLevelString("info") }()

		Convey("Valid names are accepted case-insensitively", func() {
			So(SetLevelString("DEBUG"), ShouldBeNil)
			So(Level(), ShouldEqual, zapcore.DebugLevel)
			So(SetLevelString("warning"), ShouldBeNil)
			So(Level(), ShouldEqual, zapcore.WarnLevel)
			So(SetLevelString(""), ShouldBeNil)
			So(Level(), ShouldEqual, zapcore.InfoLevel)
		})

		Convey("Unknown names are rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}

func TestRequestIDFrom(t *testing.T) {
	Convey("An empty id leaves the context untouched", t, func() {
		ctx := WithRequestID(context.Background(), "")
		So(RequestIDFrom(ctx), ShouldEqual, "")
	})
}
