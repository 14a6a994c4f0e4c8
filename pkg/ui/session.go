package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"safecoll/pkg/constdict"
	"safecoll/pkg/lockedlist"
	"safecoll/pkg/namedtuple"
	"safecoll/pkg/primitives"
	"safecoll/pkg/rlockedlist"
)

// acquireWait bounds how long a playground acquire is allowed to park the UI
// loop on a lock held by another named owner.
const acquireWait = 2 * time.Second

// Session owns one live instance of each guarded container and interprets
// playground commands against them. It is the non-visual half of the UI so
// the command surface can be exercised without a terminal.
type Session struct {
	dict   *constdict.ConstantDict[string, string]
	tuple  *namedtuple.NamedTuple
	list   *lockedlist.LockedList[string]
	rlist  *rlockedlist.RLockedList[string]
	tokens map[string]*primitives.OwnerToken
}

// NewSession creates a session with empty containers.
func NewSession() *Session {
	return &Session{
		dict:   constdict.New[string, string](),
		list:   lockedlist.New[string](),
		rlist:  rlockedlist.New[string](),
		tokens: make(map[string]*primitives.OwnerToken),
	}
}

// LoadDemoData preloads the containers with sample content so the playground
// has something to poke at.
func (s *Session) LoadDemoData() error {
	pairs := [][2]string{
		{"language", "go"},
		{"paradigm", "imperative"},
		{"maturity", "alpha"},
	}
	for _, p := range pairs {
		if err := s.dict.Insert(p[0], p[1]); err != nil {
			return err
		}
	}

	tup, err := namedtuple.New(
		namedtuple.F("a", 1),
		namedtuple.F("b", 2.5),
		namedtuple.F("c", "x"),
	)
	if err != nil {
		return err
	}
	s.tuple = tup

	for _, v := range []string{"alpha", "beta", "gamma"} {
		if err := s.list.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// token returns the owner token registered under name, creating it on first
// use. Each distinct name models one thread of control.
func (s *Session) token(name string) *primitives.OwnerToken {
	tok, ok := s.tokens[name]
	if !ok {
		tok = primitives.NewOwnerToken()
		s.tokens[name] = tok
	}
	return tok
}

// Eval interprets a single playground command and returns its output.
func (s *Session) Eval(input string) (string, error) {
	args := strings.Fields(strings.TrimSpace(input))
	if len(args) == 0 {
		return "", nil
	}

	switch args[0] {
	case "help":
		return helpText, nil
	case "dict":
		return s.evalDict(args[1:])
	case "tuple":
		return s.evalTuple(args[1:])
	case "list":
		return s.evalList(args[1:])
	case "rlist":
		return s.evalRList(args[1:])
	default:
		return "", fmt.Errorf("unknown command %q, try 'help'", args[0])
	}
}

func (s *Session) evalDict(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: dict <insert|set|get|remove|contains|keys|len|show|emulate|typeof> ...")
	}

	switch args[0] {
	case "insert":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: dict insert <key> <value>")
		}
		if err := s.dict.Insert(args[1], args[2]); err != nil {
			return "", err
		}
		return fmt.Sprintf("inserted %s=%s", args[1], args[2]), nil
	case "set":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: dict set <key> <value>")
		}
		if err := s.dict.Set(args[1], args[2]); err != nil {
			return "", err
		}
		return fmt.Sprintf("set %s=%s", args[1], args[2]), nil
	case "get":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: dict get <key>")
		}
		v, ok := s.dict.Get(args[1])
		if !ok {
			return fmt.Sprintf("%s: (absent)", args[1]), nil
		}
		return fmt.Sprintf("%s=%s", args[1], v), nil
	case "remove":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: dict remove <key>")
		}
		if err := s.dict.Remove(args[1]); err != nil {
			return "", err
		}
		return "removed", nil
	case "contains":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: dict contains <key>")
		}
		return strconv.FormatBool(s.dict.Contains(args[1])), nil
	case "keys":
		return fmt.Sprintf("%v", s.dict.Keys()), nil
	case "len":
		return strconv.Itoa(s.dict.Len()), nil
	case "show":
		return s.dict.String(), nil
	case "emulate":
		enable, err := parseToggle(args[1:])
		if err != nil {
			return "", err
		}
		active := s.dict.ActAsDict(enable)
		kind := s.dict.TypeOf()
		return fmt.Sprintf("emulation=%t typeof=%s generic=%t", active, kind, kind.IsGeneric()), nil
	case "typeof":
		return s.dict.TypeOf().String(), nil
	default:
		return "", fmt.Errorf("unknown dict operation %q", args[0])
	}
}

func (s *Session) evalTuple(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: tuple <new|find|at|keys|items|len|show|emulate|typeof> ...")
	}

	if args[0] == "new" {
		fields := make([]namedtuple.Field, 0, len(args)-1)
		for _, arg := range args[1:] {
			name, raw, found := strings.Cut(arg, "=")
			if !found {
				return "", fmt.Errorf("tuple fields are name=value, got %q", arg)
			}
			fields = append(fields, namedtuple.F(name, parseValue(raw)))
		}
		tup, err := namedtuple.New(fields...)
		if err != nil {
			return "", err
		}
		s.tuple = tup
		return tup.String(), nil
	}

	if s.tuple == nil {
		return "", fmt.Errorf("no tuple yet, create one with 'tuple new a=1 b=2.5'")
	}

	switch args[0] {
	case "find":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: tuple find <name>")
		}
		v, err := s.tuple.Find(args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s=%v float-like=%t", args[1], v, namedtuple.IsFloatLike(v)), nil
	case "at":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: tuple at <index|name>")
		}
		if i, err := strconv.Atoi(args[1]); err == nil {
			v, err := s.tuple.At(i)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("[%d]=%v", i, v), nil
		}
		v, err := s.tuple.AtName(args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s=%v", args[1], v), nil
	case "keys":
		return fmt.Sprintf("%v", s.tuple.Keys()), nil
	case "items":
		return fmt.Sprintf("%v", s.tuple.Items()), nil
	case "len":
		return strconv.Itoa(s.tuple.Len()), nil
	case "show":
		return s.tuple.String(), nil
	case "emulate":
		enable, err := parseToggle(args[1:])
		if err != nil {
			return "", err
		}
		active := s.tuple.ActAsTuple(enable)
		kind := s.tuple.TypeOf()
		return fmt.Sprintf("emulation=%t typeof=%s generic=%t", active, kind, kind.IsGeneric()), nil
	case "typeof":
		return s.tuple.TypeOf().String(), nil
	default:
		return "", fmt.Errorf("unknown tuple operation %q", args[0])
	}
}

func (s *Session) evalList(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: list <lock|unlock|locked|add|at|rm|len|show> ...")
	}

	switch args[0] {
	case "lock":
		if err := s.list.Acquire(); err != nil {
			return "", err
		}
		return "locked", nil
	case "unlock":
		if err := s.list.Release(); err != nil {
			return "", err
		}
		return "unlocked", nil
	case "locked":
		return strconv.FormatBool(s.list.IsLocked()), nil
	case "add":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: list add <value>")
		}
		if err := s.list.Append(args[1]); err != nil {
			return "", err
		}
		return "appended", nil
	case "at":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: list at <index>")
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("index must be an integer: %w", err)
		}
		v, err := s.list.At(i)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%d]=%s", i, v), nil
	case "rm":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: list rm <index>")
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("index must be an integer: %w", err)
		}
		removed, err := s.list.RemoveAt(i)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("removed %s", removed), nil
	case "len":
		n, err := s.list.Len()
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	case "show":
		values, err := s.list.Values()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", values), nil
	default:
		return "", fmt.Errorf("unknown list operation %q", args[0])
	}
}

func (s *Session) evalRList(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: rlist <acquire|try|release|add|at|len|show|status> <owner> ...")
	}

	if args[0] == "status" {
		owner := "(free)"
		if o := s.rlist.Owner(); o != nil {
			owner = o.String()
		}
		return fmt.Sprintf("owner=%s holds=%d", owner, s.rlist.HoldCount()), nil
	}

	if len(args) < 2 {
		return "", fmt.Errorf("rlist %s needs an owner name", args[0])
	}
	tok := s.token(args[1])

	switch args[0] {
	case "acquire":
		ctx, cancel := context.WithTimeout(context.Background(), acquireWait)
		defer cancel()
		if err := s.rlist.AcquireContext(ctx, tok); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s holds the lock (count=%d)", args[1], s.rlist.HoldCount()), nil
	case "try":
		if !s.rlist.TryAcquire(tok) {
			return fmt.Sprintf("%s would block: held by %v", args[1], s.rlist.Owner()), nil
		}
		return fmt.Sprintf("%s holds the lock (count=%d)", args[1], s.rlist.HoldCount()), nil
	case "release":
		if err := s.rlist.Release(tok); err != nil {
			return "", err
		}
		return fmt.Sprintf("released (count=%d)", s.rlist.HoldCount()), nil
	case "add":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: rlist add <owner> <value>")
		}
		if err := s.rlist.Append(tok, args[2]); err != nil {
			return "", err
		}
		return "appended", nil
	case "at":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: rlist at <owner> <index>")
		}
		i, err := strconv.Atoi(args[2])
		if err != nil {
			return "", fmt.Errorf("index must be an integer: %w", err)
		}
		v, err := s.rlist.At(tok, i)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%d]=%s", i, v), nil
	case "len":
		n, err := s.rlist.Len(tok)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	case "show":
		values, err := s.rlist.Values(tok)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", values), nil
	default:
		return "", fmt.Errorf("unknown rlist operation %q", args[0])
	}
}

// parseValue turns a playground literal into a typed field value: integer
// digits become int, decimal forms become float64, everything else stays a
// string.
func parseValue(raw string) any {
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func parseToggle(args []string) (bool, error) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return false, fmt.Errorf("expected 'on' or 'off'")
	}
	return args[0] == "on", nil
}

const helpText = `commands:
  dict insert <k> <v>   add a permanent entry
  dict set <k> <v>      assignment form: inserts when absent, rejected when present
  dict get|remove|contains <k>
  dict keys|len|show|typeof
  dict emulate on|off   toggle generic-mapping emulation

  tuple new a=1 b=2.5 c=x   build a fixed record (order = argument order)
  tuple find <name>     look a field up by name
  tuple at <index|name> positional or named access
  tuple keys|items|len|show|typeof
  tuple emulate on|off  toggle generic-sequence emulation

  list lock|unlock|locked
  list add <v> / at <i> / rm <i> / len / show

  rlist acquire|try|release <owner>
  rlist add <owner> <v> / at <owner> <i> / len <owner> / show <owner>
  rlist status`
