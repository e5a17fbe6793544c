package logging

import (
	"fmt"
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Component(name string) Field {
	return String("component", name)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}

// Ticket identifies a queued path request.
func Ticket(id fmt.Stringer) Field {
	return String("ticket", id.String())
}

func NodeIndex(i int) Field {
	return Int("node", i)
}

func Triangle(i int) Field {
	return Int("triangle", i)
}

// Radius is an agent radius in world units.
func Radius(r float64) Field {
	return Float64("radius", r)
}

// Point logs a world position as "(x, y)".
func Point(key string, p fmt.Stringer) Field {
	return String(key, p.String())
}

func Status(s fmt.Stringer) Field {
	return String("status", s.String())
}

func Budget(d time.Duration) Field {
	return Duration("budget", d)
}

func Expansions(n int) Field {
	return Int("expansions", n)
}
