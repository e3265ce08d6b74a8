package config

import (
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// ServiceName 은 모든 로그 라인의 service 필드 값이다.
const ServiceName = "idea-miner"

// RunID 는 프로세스 한 번의 실행을 식별한다.
var RunID = uuid.NewString()

// LoggerInterface 는 miner 가 실제로 쓰는 로그 메서드만 모은 것이다. *slog.Logger 가 구현한다.
type LoggerInterface interface {
	Info(args ...any)
	Warn(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields 는 구조화 로그를 위한 공통 필드 타입이다.
type Fields map[string]any

// Logger 는 전역 로거 인스턴스다.
// InitLogger 가 호출되지 않더라도 기본 info 레벨로 동작하도록 초기화한다.
var Logger LoggerInterface = NewLogger("info")

// InitLogger 는 설정의 로그 레벨로 전역 로거를 초기화한다.
// 값이 비어 있으면 LOG_LEVEL 환경변수, 그것도 없으면 info 를 사용한다.
func InitLogger(cfg LoggingConfig) {
	level := strings.ToLower(cfg.Level)
	if level == "" {
		level = strings.ToLower(os.Getenv("LOG_LEVEL"))
	}
	if level == "" {
		level = "info"
	}
	Logger = NewLogger(level)
}

// NewLogger 는 주어진 레벨로 stdout 에 JSON 한 줄씩 쓰는 gookit/slog 로거를 생성한다.
func NewLogger(level string) LoggerInterface {
	return newLogger(level, os.Stdout)
}

// newLogger 의 모든 레코드에는 service(채널)와 run_id 필드가 붙는다.
// 같은 출력 파일에 여러 실행이 누적되므로 로그에서 실행을 구분하는 데 쓴다.
func newLogger(level string, out io.Writer) *slog.Logger {
	h := handler.IOWriterWithMaxLevel(out, slog.LevelByName(level))
	h.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyChannel,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{slog.FieldKeyChannel: "service"}
		f.TimeFormat = "2006-01-02T15:04:05"
	}))

	lg := slog.NewWithName(ServiceName, func(l *slog.Logger) {
		l.ChannelName = ServiceName
	})
	lg.AddHandler(h)
	lg.AddProcessor(slog.ProcessorFunc(func(r *slog.Record) {
		r.AddField("run_id", RunID)
	}))
	return lg
}

// InfoWithFields 는 구조화 필드를 포함한 JSON 로그를 출력한다.
// 전역 로거가 gookit/slog 구현이 아니면 메시지만 출력한다.
func InfoWithFields(msg string, fields Fields) {
	if lg, ok := Logger.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Info(msg)
		return
	}
	Logger.Info(msg)
}

func WarnWithFields(msg string, fields Fields) {
	if lg, ok := Logger.(*slog.Logger); ok {
		lg.WithFields(slog.M(fields)).Warn(msg)
		return
	}
	Logger.Warn(msg)
}
