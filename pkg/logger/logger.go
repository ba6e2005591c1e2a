package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - общий логгер процесса. До Init пишет в stderr с уровнем info,
// чтобы тесты и утилиты могли пользоваться им без настройки.
var Log = logrus.New()

// Init настраивает Log из окружения. Вызывается один раз в main.
//
//	LOG_LEVEL  - уровень logrus, по умолчанию info (debug показывает переходы ловушек)
//	LOG_FORMAT - json для сбора логов, иначе текст с временем
//	LOG_FILE   - путь к файлу; пусто - stdout
func Init() error {
	out := io.Writer(os.Stdout)
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			Log = New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
			return err
		}
		out = f
	}
	Log = New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), out)
	return nil
}

// New собирает логгер. Неизвестный уровень трактуется как info.
func New(level, format string, out io.Writer) *logrus.Logger {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	l.SetOutput(out)
	return l
}

// Component возвращает запись логгера с полем component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
