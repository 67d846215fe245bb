package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"heroes-marathon-bot/internal/domain"
	"heroes-marathon-bot/internal/locale"
	"heroes-marathon-bot/internal/platform/clock"
	apperrors "heroes-marathon-bot/internal/platform/errors"
	"heroes-marathon-bot/internal/platform/obs"
	"heroes-marathon-bot/internal/ports"
)

const (
	CommandStart              = "start"
	CallbackAlreadyRegistered = "already_registered"
)

type RegistrationOptions struct {
	// MinNameLength applies to name and surname; values below 1 accept any alphabetic string.
	MinNameLength int
	// StartRetryDelay postpones the start retry nudge; zero re-prompts immediately.
	StartRetryDelay time.Duration
	WebsiteURLs     map[domain.Language]string
}

// Stopper is the handle of a scheduled callback.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d; time.AfterFunc in production.
type AfterFunc func(d time.Duration, f func()) Stopper

// RegistrationService drives the registration and timing conversation.
//
// Each chat advances through a fixed sequence of states. An inbound event is
// fed to the handler of the session's current state, which either accepts it
// (store the value, move to the next state, emit its prompt) or rejects it
// (stay, re-prompt). Callers must not feed events of one chat concurrently;
// the Dispatcher guarantees that.
type RegistrationService struct {
	sessions  ports.SessionStore
	results   ports.ResultRepository
	distance  ports.DistanceProvider
	messenger ports.Messenger
	clock     clock.Clock
	log       *zap.Logger
	opts      RegistrationOptions

	afterFunc AfterFunc
	mu        sync.Mutex
	nudges    map[int64]Stopper

	steps map[domain.State]step
}

// step couples the prompt of a state with the handler of its input.
type step struct {
	prompt func(s *domain.Session) []domain.Reply
	handle func(ctx context.Context, s *domain.Session, ev domain.Event) transition
}

// transition is the outcome of feeding one event to a step.
// On retry the state is left untouched and replies replace the prompt.
// afterSave runs only once the advanced session is stored; its replies follow replies.
type transition struct {
	next      domain.State
	replies   []domain.Reply
	retry     bool
	afterSave func(ctx context.Context) []domain.Reply
	// saveFailed is sent instead of anything else when the session cannot be stored.
	saveFailed []domain.Reply
}

func NewRegistrationService(
	sessions ports.SessionStore,
	results ports.ResultRepository,
	distance ports.DistanceProvider,
	messenger ports.Messenger,
	clk clock.Clock,
	log *zap.Logger,
	opts RegistrationOptions,
) (*RegistrationService, error) {
	if sessions == nil || results == nil || distance == nil || messenger == nil {
		return nil, errors.New("registration service: sessions, results, distance and messenger are required")
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.StartRetryDelay < 0 {
		return nil, errors.New("registration service: start retry delay must not be negative")
	}

	s := &RegistrationService{
		sessions:  sessions,
		results:   results,
		distance:  distance,
		messenger: messenger,
		clock:     clk,
		log:       log,
		opts:      opts,
		afterFunc: func(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) },
		nudges:    make(map[int64]Stopper),
	}
	s.steps = s.transitionTable()

	return s, nil
}

// WithAfterFunc replaces the scheduler used for delayed start nudges.
func (s *RegistrationService) WithAfterFunc(f AfterFunc) *RegistrationService {
	s.afterFunc = f
	return s
}

func (s *RegistrationService) transitionTable() map[domain.State]step {
	return map[domain.State]step{
		domain.StateSelectLanguage:  {prompt: s.promptLanguage, handle: s.handleLanguage},
		domain.StateEnterName:       {prompt: s.promptName, handle: s.handleName},
		domain.StateEnterSurname:    {prompt: s.promptSurname, handle: s.handleSurname},
		domain.StateEnterBirthDay:   {prompt: s.promptBirthDay, handle: s.handleBirthDay},
		domain.StateEnterBirthMonth: {prompt: s.promptBirthMonth, handle: s.handleBirthMonth},
		domain.StateEnterBirthYear:  {prompt: s.promptBirthYear, handle: s.handleBirthYear},
		domain.StateEnterPhone:      {prompt: s.promptPhone, handle: s.handlePhone},
		domain.StateAwaitStart:      {prompt: s.promptStart, handle: s.handleStart},
		domain.StateAwaitFinish:     {prompt: s.promptFinish, handle: s.handleFinish},
		domain.StateComplete:        {prompt: func(*domain.Session) []domain.Reply { return nil }, handle: s.handleComplete},
	}
}

// Handle processes one inbound event for its chat.
func (s *RegistrationService) Handle(ctx context.Context, ev domain.Event) (err error) {
	ctx = obs.WithRequestID(ctx)
	defer obs.Time(ctx, s.log, "registration.Handle")(&err)

	if ev.Kind == domain.EventCommand && ev.Text == CommandStart {
		return s.restart(ctx, ev.ChatID)
	}

	if ev.Kind == domain.EventCallback {
		return s.handleCallback(ctx, ev)
	}

	sess, err := s.sessions.Load(ctx, ev.ChatID)
	if errors.Is(err, apperrors.ErrSessionNotFound) {
		if ev.Kind == domain.EventLocation {
			// A location without any session cannot be a valid finish; nothing is stored.
			s.send(ctx, domain.Reply{ChatID: ev.ChatID, Text: locale.NoStartRecordedBilingual})
			return nil
		}
		return s.restart(ctx, ev.ChatID)
	}
	if err != nil {
		return fmt.Errorf("registration: load session %d: %w", ev.ChatID, err)
	}

	if ev.Kind == domain.EventLocation && sess.State.Before(domain.StateAwaitStart) {
		s.send(ctx, s.noStartReply(sess))
		s.send(ctx, s.steps[sess.State].prompt(sess)...)
		return nil
	}

	st, ok := s.steps[sess.State]
	if !ok {
		s.log.Warn("session in unknown state; restarting",
			zap.Int64("chat_id", sess.ChatID), zap.String("state", string(sess.State)))
		return s.restart(ctx, ev.ChatID)
	}

	tr := st.handle(ctx, sess, ev)
	if tr.retry {
		s.send(ctx, tr.replies...)
		return nil
	}

	sess.State = tr.next
	sess.UpdatedAt = s.clock.Now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.send(ctx, tr.saveFailed...)
		return fmt.Errorf("registration: save session %d: %w", sess.ChatID, err)
	}

	s.log.Info("session advanced",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Int64("chat_id", sess.ChatID),
		zap.String("state", string(sess.State)),
	)

	s.send(ctx, tr.replies...)
	if tr.afterSave != nil {
		s.send(ctx, tr.afterSave(ctx)...)
	}
	s.send(ctx, s.steps[sess.State].prompt(sess)...)
	return nil
}

// restart (re)creates the chat's session at language selection and sends the welcome.
func (s *RegistrationService) restart(ctx context.Context, chatID int64) error {
	s.cancelNudge(chatID)

	sess := domain.NewSession(chatID, s.clock.Now())
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("registration: create session %d: %w", chatID, err)
	}

	s.send(ctx, s.promptLanguage(sess)...)
	return nil
}

func (s *RegistrationService) handleCallback(ctx context.Context, ev domain.Event) error {
	if ev.Text != CallbackAlreadyRegistered {
		s.log.Debug("ignoring callback", zap.Int64("chat_id", ev.ChatID), zap.String("data", ev.Text))
		return nil
	}

	lang := domain.English
	if l, ok := domain.ParseLanguage(ev.ClientLanguage); ok {
		lang = l
	}

	sess, err := s.sessions.Load(ctx, ev.ChatID)
	switch {
	case err == nil && sess.Language.Valid():
		lang = sess.Language
	case err != nil && !errors.Is(err, apperrors.ErrSessionNotFound):
		return fmt.Errorf("registration: load session %d: %w", ev.ChatID, err)
	}

	s.send(ctx, domain.Reply{ChatID: ev.ChatID, Text: locale.Text(lang, locale.Glory), RemoveKeyboard: true})
	return nil
}

func (s *RegistrationService) send(ctx context.Context, replies ...domain.Reply) {
	for _, r := range replies {
		if err := s.messenger.Send(ctx, r); err != nil {
			s.log.Error("send reply failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Int64("chat_id", r.ChatID),
				zap.Error(err),
			)
		}
	}
}

func (s *RegistrationService) noStartReply(sess *domain.Session) domain.Reply {
	if !sess.Language.Valid() {
		return domain.Reply{ChatID: sess.ChatID, Text: locale.NoStartRecordedBilingual}
	}
	return domain.Reply{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.NoStartRecorded)}
}

func (s *RegistrationService) placeholder(sess *domain.Session) string {
	return locale.Text(sess.Language, locale.Placeholder)
}

func textOf(ev domain.Event) (string, bool) {
	if ev.Kind != domain.EventText {
		return "", false
	}
	return ev.Text, true
}

func advance(next domain.State, replies ...domain.Reply) transition {
	return transition{next: next, replies: replies}
}

func retry(replies ...domain.Reply) transition {
	return transition{retry: true, replies: replies}
}

// retryWith re-prompts with an error text carrying the step's keyboard.
func retryWith(sess *domain.Session, text string, kb *domain.Keyboard) transition {
	return retry(domain.Reply{ChatID: sess.ChatID, Text: text, Keyboard: kb})
}

// Keyboards.

func languageKeyboard() *domain.Keyboard {
	return &domain.Keyboard{
		Rows:    [][]domain.Button{{{Text: locale.ButtonUkrainian}, {Text: locale.ButtonEnglish}}},
		OneTime: true,
	}
}

func skipKeyboard(lang domain.Language) *domain.Keyboard {
	return &domain.Keyboard{
		Rows:    [][]domain.Button{{{Text: locale.Text(lang, locale.ButtonSkip)}}},
		OneTime: true,
	}
}

func phoneKeyboard(lang domain.Language) *domain.Keyboard {
	return &domain.Keyboard{
		Rows: [][]domain.Button{
			{{Text: locale.Text(lang, locale.ButtonShare), RequestContact: true}},
			{{Text: locale.Text(lang, locale.ButtonSkip)}},
		},
		OneTime: true,
	}
}

func locationKeyboard(lang domain.Language, key locale.Key, oneTime bool) *domain.Keyboard {
	return &domain.Keyboard{
		Rows:    [][]domain.Button{{{Text: locale.Text(lang, key), RequestLocation: true}}},
		OneTime: oneTime,
	}
}

// Prompts.

func (s *RegistrationService) promptLanguage(sess *domain.Session) []domain.Reply {
	return []domain.Reply{{ChatID: sess.ChatID, Text: locale.Welcome, Keyboard: languageKeyboard()}}
}

func (s *RegistrationService) promptName(sess *domain.Session) []domain.Reply {
	return []domain.Reply{{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.AskName), Keyboard: skipKeyboard(sess.Language)}}
}

func (s *RegistrationService) promptSurname(sess *domain.Session) []domain.Reply {
	return []domain.Reply{{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.AskSurname), Keyboard: skipKeyboard(sess.Language)}}
}

func (s *RegistrationService) promptBirthDay(sess *domain.Session) []domain.Reply {
	return []domain.Reply{{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.AskBirthDay), Keyboard: skipKeyboard(sess.Language)}}
}

func (s *RegistrationService) promptBirthMonth(sess *domain.Session) []domain.Reply {
	return []domain.Reply{{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.AskBirthMonth), Keyboard: skipKeyboard(sess.Language)}}
}

func (s *RegistrationService) promptBirthYear(sess *domain.Session) []domain.Reply {
	text := locale.Text(sess.Language, locale.AskBirthYear, s.clock.Now().Year())
	return []domain.Reply{{ChatID: sess.ChatID, Text: text, Keyboard: skipKeyboard(sess.Language)}}
}

func (s *RegistrationService) promptPhone(sess *domain.Session) []domain.Reply {
	return []domain.Reply{{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.AskPhone), Keyboard: phoneKeyboard(sess.Language)}}
}

func (s *RegistrationService) promptStart(sess *domain.Session) []domain.Reply {
	return []domain.Reply{
		{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.LocationInstruction)},
		{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.AskStart), Keyboard: locationKeyboard(sess.Language, locale.ButtonStart, true)},
	}
}

func (s *RegistrationService) promptFinish(sess *domain.Session) []domain.Reply {
	return []domain.Reply{
		{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.AskFinish), Keyboard: locationKeyboard(sess.Language, locale.ButtonFinish, false)},
	}
}

// Handlers.

func (s *RegistrationService) handleLanguage(_ context.Context, sess *domain.Session, ev domain.Event) transition {
	text, _ := textOf(ev)
	lang, ok := locale.LanguageFromButton(text)
	if !ok {
		return retry(domain.Reply{ChatID: sess.ChatID, Text: locale.LanguageRetry, Keyboard: languageKeyboard()})
	}

	sess.Language = lang
	return advance(domain.StateEnterName)
}

func (s *RegistrationService) invalidNameText(lang domain.Language, strict, anyLength locale.Key) string {
	if s.opts.MinNameLength >= 2 {
		return locale.Text(lang, strict, s.opts.MinNameLength)
	}
	return locale.Text(lang, anyLength)
}

func (s *RegistrationService) handleName(_ context.Context, sess *domain.Session, ev domain.Event) transition {
	text, _ := textOf(ev)
	if locale.IsSkip(text) {
		sess.Name = s.placeholder(sess)
		return advance(domain.StateEnterSurname)
	}

	name, ok := ValidatePersonName(text, s.opts.MinNameLength)
	if !ok {
		return retryWith(sess, s.invalidNameText(sess.Language, locale.InvalidName, locale.InvalidNameAnyLength), skipKeyboard(sess.Language))
	}

	sess.Name = name
	return advance(domain.StateEnterSurname)
}

func (s *RegistrationService) handleSurname(_ context.Context, sess *domain.Session, ev domain.Event) transition {
	text, _ := textOf(ev)
	if locale.IsSkip(text) {
		sess.Surname = s.placeholder(sess)
		return advance(domain.StateEnterBirthDay)
	}

	surname, ok := ValidatePersonName(text, s.opts.MinNameLength)
	if !ok {
		return retryWith(sess, s.invalidNameText(sess.Language, locale.InvalidSurname, locale.InvalidSurnameAny), skipKeyboard(sess.Language))
	}

	sess.Surname = surname
	return advance(domain.StateEnterBirthDay)
}

func (s *RegistrationService) handleBirthDay(_ context.Context, sess *domain.Session, ev domain.Event) transition {
	text, _ := textOf(ev)
	if locale.IsSkip(text) {
		sess.BirthDay = s.placeholder(sess)
		return advance(domain.StateEnterBirthMonth)
	}

	day, ok := ParseBirthDay(text)
	if !ok {
		return retryWith(sess, locale.Text(sess.Language, locale.InvalidBirthDay), skipKeyboard(sess.Language))
	}

	sess.BirthDay = day
	return advance(domain.StateEnterBirthMonth)
}

func (s *RegistrationService) handleBirthMonth(_ context.Context, sess *domain.Session, ev domain.Event) transition {
	text, _ := textOf(ev)
	if locale.IsSkip(text) {
		sess.BirthMonth = s.placeholder(sess)
		return advance(domain.StateEnterBirthYear)
	}

	month, ok := ParseBirthMonth(text)
	if !ok {
		return retryWith(sess, locale.Text(sess.Language, locale.InvalidBirthMonth), skipKeyboard(sess.Language))
	}

	sess.BirthMonth = month
	return advance(domain.StateEnterBirthYear)
}

func (s *RegistrationService) handleBirthYear(_ context.Context, sess *domain.Session, ev domain.Event) transition {
	text, _ := textOf(ev)
	currentYear := s.clock.Now().Year()

	switch {
	case locale.IsSkip(text):
		sess.BirthYear = s.placeholder(sess)
	default:
		year, ok := ParseBirthYear(text, currentYear)
		if !ok {
			return retryWith(sess, locale.Text(sess.Language, locale.InvalidBirthYear, currentYear), skipKeyboard(sess.Language))
		}
		sess.BirthYear = year
	}

	sess.ComposeBirthdate(s.placeholder(sess))
	return advance(domain.StateEnterPhone)
}

func (s *RegistrationService) handlePhone(_ context.Context, sess *domain.Session, ev domain.Event) transition {
	if ev.Kind == domain.EventContact && ev.Phone != "" {
		sess.Phone = ev.Phone
		return advance(domain.StateAwaitStart)
	}

	if text, _ := textOf(ev); locale.IsSkip(text) {
		sess.Phone = s.placeholder(sess)
		return advance(domain.StateAwaitStart)
	}

	return retryWith(sess, locale.Text(sess.Language, locale.InvalidPhone), phoneKeyboard(sess.Language))
}

func (s *RegistrationService) handleStart(ctx context.Context, sess *domain.Session, ev domain.Event) transition {
	if ev.Kind != domain.EventLocation {
		return s.startRetry(ctx, sess)
	}

	if err := ev.Location.Validate(); err != nil {
		s.log.Info("rejected start location", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		return retryWith(sess, locale.Text(sess.Language, locale.InvalidLocation), locationKeyboard(sess.Language, locale.ButtonStart, true))
	}

	s.cancelNudge(sess.ChatID)
	sess.Start = &domain.Fix{Coordinates: ev.Location, At: s.clock.Now()}
	return advance(domain.StateAwaitFinish)
}

// startRetry re-prompts for the start location, immediately or after the configured delay.
func (s *RegistrationService) startRetry(ctx context.Context, sess *domain.Session) transition {
	reply := domain.Reply{
		ChatID:   sess.ChatID,
		Text:     locale.Text(sess.Language, locale.StartRetry),
		Keyboard: locationKeyboard(sess.Language, locale.ButtonStartRetry, false),
	}

	if s.opts.StartRetryDelay <= 0 {
		return retry(reply)
	}

	chatID := sess.ChatID
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, pending := s.nudges[chatID]; pending {
		return retry()
	}

	bg := context.WithoutCancel(ctx)
	s.nudges[chatID] = s.afterFunc(s.opts.StartRetryDelay, func() {
		s.mu.Lock()
		delete(s.nudges, chatID)
		s.mu.Unlock()

		current, err := s.sessions.Load(bg, chatID)
		if err != nil {
			s.log.Warn("start nudge: load session", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		if current.State != domain.StateAwaitStart || current.Start != nil {
			return
		}
		s.send(bg, reply)
	})

	return retry()
}

func (s *RegistrationService) cancelNudge(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.nudges[chatID]; ok {
		t.Stop()
		delete(s.nudges, chatID)
	}
}

func (s *RegistrationService) handleFinish(ctx context.Context, sess *domain.Session, ev domain.Event) transition {
	finishKeyboard := locationKeyboard(sess.Language, locale.ButtonFinish, false)

	if ev.Kind != domain.EventLocation {
		return retryWith(sess, locale.Text(sess.Language, locale.AskFinish), finishKeyboard)
	}

	if sess.Start == nil {
		return retry(s.noStartReply(sess))
	}

	km, err := s.distance.GetDistance(ctx, sess.Start.Coordinates, ev.Location)
	if err != nil {
		s.log.Info("rejected finish location", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		return retryWith(sess, locale.Text(sess.Language, locale.InvalidLocation), finishKeyboard)
	}

	sess.Finish = &domain.Fix{Coordinates: ev.Location, At: s.clock.Now()}
	sess.DistanceKm = &km

	saveFailed := domain.Reply{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.SaveFailed)}

	// The result is written only after the session is stored as complete.
	tr := advance(domain.StateComplete,
		domain.Reply{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.Finished), RemoveKeyboard: true},
		domain.Reply{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.Website), Inline: s.websiteButtons(sess.Language)},
	)
	tr.saveFailed = []domain.Reply{saveFailed}
	tr.afterSave = func(ctx context.Context) []domain.Reply {
		if err := s.persist(ctx, sess); err != nil {
			s.log.Error("persist result failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Int64("chat_id", sess.ChatID),
				zap.Error(err),
			)
			return []domain.Reply{saveFailed}
		}
		return nil
	}
	return tr
}

func (s *RegistrationService) persist(ctx context.Context, sess *domain.Session) (err error) {
	defer obs.Time(ctx, s.log, "results.SaveResult")(&err)

	result, err := sess.Result()
	if err != nil {
		return fmt.Errorf("assemble result: %w", err)
	}
	if err := s.results.SaveResult(ctx, result); err != nil {
		return fmt.Errorf("save result chat_id=%d: %w", sess.ChatID, err)
	}

	s.log.Info("result saved",
		zap.Int64("chat_id", result.ChatID),
		zap.Float64("distance_km", result.DistanceKm),
	)
	return nil
}

func (s *RegistrationService) websiteButtons(lang domain.Language) [][]domain.InlineButton {
	url := s.opts.WebsiteURLs[lang]
	row := make([]domain.InlineButton, 0, 2)
	if url != "" {
		row = append(row, domain.InlineButton{Text: locale.Text(lang, locale.ButtonWebsite), URL: url})
	}
	row = append(row, domain.InlineButton{Text: locale.Text(lang, locale.ButtonAlreadyRegistered), Data: CallbackAlreadyRegistered})
	return [][]domain.InlineButton{row}
}

func (s *RegistrationService) handleComplete(_ context.Context, sess *domain.Session, _ domain.Event) transition {
	return retry(domain.Reply{ChatID: sess.ChatID, Text: locale.Text(sess.Language, locale.AlreadyFinished), RemoveKeyboard: true})
}
