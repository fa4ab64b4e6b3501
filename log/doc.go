// Package log provides leveled structured logging on top of [log/slog].
//
// A [Logger] is configured once with functional options and never changes;
// [Logger.Wrap] and [Logger.With] derive new loggers.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("script loaded", slog.String("path", path))
//
// In addition to the slog levels there is [LevelTrace], below Debug, for
// very chatty diagnostics.
//
// # Formats
//
// [FormatJSON] writes one JSON object per record and [FormatText] writes
// key=value pairs. With [WithPretty] enabled JSON is indented and text is
// aligned and colored when the output is a terminal.
//
// # Zero value
//
// The zero Logger is valid and discards every message, so libraries can
// accept a Logger option without requiring one.
//
// # Package-level logger
//
// Functions such as [Debug] and [ErrorContext] use a package-level logger
// that writes to standard error. [Config] reconfigures it.
package log
