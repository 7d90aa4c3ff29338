package session

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/abhisek/quizkit/internal/bank"
	"github.com/abhisek/quizkit/internal/grading"
	"github.com/abhisek/quizkit/internal/skill"
)

func tfQuestion(id string, answer bool) bank.Question {
	return bank.Question{
		ID:      id,
		Type:    bank.TypeTrueFalse,
		Text:    "statement " + id,
		Variant: bank.TrueFalse{Answer: answer},
	}
}

func fibQuestion(id, accepted string) bank.Question {
	return bank.Question{
		ID:   id,
		Type: bank.TypeFillInBlank,
		Text: "blank " + id,
		Variant: bank.FillInBlank{
			AcceptableAnswers: []bank.AcceptableAnswer{{Text: accepted}},
		},
	}
}

func leveledQuestion(id string, difficulty int) bank.Question {
	q := tfQuestion(id, true)
	q.Meta = &bank.Meta{Difficulty: difficulty, Category: "geography"}
	return q
}

func testBank(t *testing.T, id string, questions ...bank.Question) *bank.QuestionBank {
	t.Helper()
	return &bank.QuestionBank{
		ID:        id,
		Name:      "Bank " + id,
		Version:   "1.0.0",
		Questions: questions,
	}
}

func registryWith(t *testing.T, banks ...*bank.QuestionBank) *bank.Registry {
	t.Helper()
	r := bank.NewRegistry()
	for _, b := range banks {
		if err := r.Add(b); err != nil {
			t.Fatalf("Add(%s) = %v", b.ID, err)
		}
	}
	return r
}

func TestCreatePreservesBankOrder(t *testing.T) {
	reg := registryWith(t,
		testBank(t, "alpha", tfQuestion("q1", true), tfQuestion("q2", false)),
		testBank(t, "beta", tfQuestion("q1", true)),
	)

	s, err := Create(reg, CreateOptions{UserID: "u1", BankIDs: []string{"alpha", "beta"}})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if s.ID == "" {
		t.Error("Create() assigned empty session id")
	}

	wantKeys := []string{"alpha::q1", "alpha::q2", "beta::q1"}
	if len(s.Questions) != len(wantKeys) {
		t.Fatalf("len(Questions) = %d, want %d", len(s.Questions), len(wantKeys))
	}
	for i, want := range wantKeys {
		sq := s.Questions[i]
		if sq.Key != want {
			t.Errorf("Questions[%d].Key = %q, want %q", i, sq.Key, want)
		}
		if sq.Index != i {
			t.Errorf("Questions[%d].Index = %d, want %d", i, sq.Index, i)
		}
	}
	if got := s.Status(); got != StatusCreated {
		t.Errorf("Status() = %q, want %q", got, StatusCreated)
	}
}

func TestCreateUnknownBankFails(t *testing.T) {
	reg := registryWith(t, testBank(t, "alpha", tfQuestion("q1", true)))

	s, err := Create(reg, CreateOptions{BankIDs: []string{"alpha", "missing"}})
	if !errors.Is(err, bank.ErrUnknownBank) {
		t.Fatalf("Create() error = %v, want ErrUnknownBank", err)
	}
	if s != nil {
		t.Errorf("Create() = %v, want nil session on error", s)
	}
}

func TestCreateDeduplicatesByCompositeKey(t *testing.T) {
	reg := registryWith(t,
		testBank(t, "alpha", tfQuestion("q1", true)),
		testBank(t, "beta", tfQuestion("q1", false)),
	)

	// Same bank listed twice contributes its questions once; the same
	// bare id in a different bank is a distinct question.
	s, err := Create(reg, CreateOptions{BankIDs: []string{"alpha", "alpha", "beta"}})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	wantKeys := []string{"alpha::q1", "beta::q1"}
	if len(s.Questions) != len(wantKeys) {
		t.Fatalf("len(Questions) = %d, want %d", len(s.Questions), len(wantKeys))
	}
	for i, want := range wantKeys {
		if s.Questions[i].Key != want {
			t.Errorf("Questions[%d].Key = %q, want %q", i, s.Questions[i].Key, want)
		}
	}
}

func TestCreateLimitAndRandomize(t *testing.T) {
	questions := make([]bank.Question, 0, 10)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		questions = append(questions, tfQuestion(id, true))
	}
	reg := registryWith(t, testBank(t, "alpha", questions...))

	s, err := Create(reg, CreateOptions{
		BankIDs:   []string{"alpha"},
		Randomize: true,
		Limit:     4,
		Rand:      rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if len(s.Questions) != 4 {
		t.Fatalf("len(Questions) = %d, want 4", len(s.Questions))
	}

	seen := make(map[string]bool)
	for i, sq := range s.Questions {
		if seen[sq.Key] {
			t.Errorf("duplicate key %q in selection", sq.Key)
		}
		seen[sq.Key] = true
		if sq.Index != i {
			t.Errorf("Questions[%d].Index = %d, want %d", i, sq.Index, i)
		}
	}

	// Same seed, same selection.
	again, err := Create(reg, CreateOptions{
		BankIDs:   []string{"alpha"},
		Randomize: true,
		Limit:     4,
		Rand:      rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	for i := range s.Questions {
		if again.Questions[i].Key != s.Questions[i].Key {
			t.Errorf("seeded re-run diverged at %d: %q vs %q",
				i, again.Questions[i].Key, s.Questions[i].Key)
		}
	}
}

func TestCreateAdaptiveBiasesTowardSkillLevel(t *testing.T) {
	questions := make([]bank.Question, 0, 20)
	for i := 0; i < 10; i++ {
		questions = append(questions, leveledQuestion(string(rune('a'+i)), 1))
	}
	for i := 0; i < 10; i++ {
		questions = append(questions, leveledQuestion(string(rune('k'+i)), 5))
	}
	reg := registryWith(t, testBank(t, "alpha", questions...))

	levels := skill.Levels{}
	lv := levels.Get("geography")
	lv.EstimatedLevel = 1

	rng := rand.New(rand.NewSource(11))
	easy, hard := 0, 0
	for trial := 0; trial < 100; trial++ {
		s, err := Create(reg, CreateOptions{
			BankIDs:     []string{"alpha"},
			Adaptive:    true,
			SkillLevels: levels,
			Limit:       5,
			Rand:        rng,
		})
		if err != nil {
			t.Fatalf("Create() = %v", err)
		}
		if len(s.Questions) != 5 {
			t.Fatalf("len(Questions) = %d, want 5", len(s.Questions))
		}
		for _, sq := range s.Questions {
			if sq.Question.EffectiveDifficulty() == 1 {
				easy++
			} else {
				hard++
			}
		}
	}
	if easy <= hard {
		t.Errorf("adaptive selection picked %d easy vs %d hard for a level-1 user", easy, hard)
	}
}

func TestCreateAdaptiveShufflesPresentationOrder(t *testing.T) {
	questions := make([]bank.Question, 0, 20)
	for i := 0; i < 10; i++ {
		questions = append(questions, leveledQuestion(string(rune('a'+i)), 3))
	}
	for i := 0; i < 10; i++ {
		questions = append(questions, leveledQuestion(string(rune('k'+i)), 1))
	}
	reg := registryWith(t, testBank(t, "alpha", questions...))

	levels := skill.Levels{}
	levels.Get("geography").EstimatedLevel = 3

	// The weighted draw emits well-matched questions first. Once the
	// session order is shuffled, matched and mismatched difficulties
	// must land at the same average position.
	rng := rand.New(rand.NewSource(29))
	var matchedSum, matchedN, otherSum, otherN float64
	for trial := 0; trial < 500; trial++ {
		s, err := Create(reg, CreateOptions{
			BankIDs:     []string{"alpha"},
			Adaptive:    true,
			Randomize:   true,
			SkillLevels: levels,
			Limit:       10,
			Rand:        rng,
		})
		if err != nil {
			t.Fatalf("Create() = %v", err)
		}
		for i, sq := range s.Questions {
			if sq.Question.EffectiveDifficulty() == 3 {
				matchedSum += float64(i)
				matchedN++
			} else {
				otherSum += float64(i)
				otherN++
			}
		}
	}
	if matchedN == 0 || otherN == 0 {
		t.Fatalf("selection never mixed difficulties: matched=%v mismatched=%v", matchedN, otherN)
	}
	matchedMean := matchedSum / matchedN
	otherMean := otherSum / otherN
	if gap := math.Abs(matchedMean - otherMean); gap > 0.4 {
		t.Errorf("mean position %.2f for difficulty 3 vs %.2f for difficulty 1, gap %.2f",
			matchedMean, otherMean, gap)
	}
}

func TestCreateAdaptiveWithoutSkillDataFallsBack(t *testing.T) {
	reg := registryWith(t,
		testBank(t, "alpha", tfQuestion("q1", true), tfQuestion("q2", true)),
	)

	s, err := Create(reg, CreateOptions{
		BankIDs:     []string{"alpha"},
		Adaptive:    true,
		SkillLevels: skill.Levels{},
	})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	wantKeys := []string{"alpha::q1", "alpha::q2"}
	for i, want := range wantKeys {
		if s.Questions[i].Key != want {
			t.Errorf("Questions[%d].Key = %q, want %q", i, s.Questions[i].Key, want)
		}
	}
}

func TestUpdateAnswer(t *testing.T) {
	reg := registryWith(t, testBank(t, "alpha", tfQuestion("q1", true)))
	s, err := Create(reg, CreateOptions{BankIDs: []string{"alpha"}})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	if err := s.UpdateAnswer("alpha::q1", true); err != nil {
		t.Fatalf("UpdateAnswer() = %v", err)
	}
	if got := s.Status(); got != StatusInProgress {
		t.Errorf("Status() = %q, want %q", got, StatusInProgress)
	}

	// Last write wins.
	if err := s.UpdateAnswer("alpha::q1", false); err != nil {
		t.Fatalf("UpdateAnswer() = %v", err)
	}
	if got := s.Answers["alpha::q1"].Value; got != false {
		t.Errorf("Answers[alpha::q1].Value = %v, want false", got)
	}
	if len(s.Answers) != 1 {
		t.Errorf("len(Answers) = %d, want 1", len(s.Answers))
	}
}

func TestUpdateAnswerUnknownKey(t *testing.T) {
	reg := registryWith(t, testBank(t, "alpha", tfQuestion("q1", true)))
	s, err := Create(reg, CreateOptions{BankIDs: []string{"alpha"}})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	if err := s.UpdateAnswer("beta::q1", true); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("UpdateAnswer() error = %v, want ErrUnknownQuestion", err)
	}
	if len(s.Answers) != 0 {
		t.Errorf("len(Answers) = %d after failed update, want 0", len(s.Answers))
	}
}

func TestGradeSummary(t *testing.T) {
	reg := registryWith(t, testBank(t, "alpha",
		tfQuestion("right", true),
		tfQuestion("wrong", true),
		fibQuestion("river", "mississippi"),
		tfQuestion("skipped", true),
	))
	s, err := Create(reg, CreateOptions{BankIDs: []string{"alpha"}})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	mustAnswer(t, s, "alpha::right", true)
	mustAnswer(t, s, "alpha::wrong", false)
	// Within partial-credit range of the accepted answer but below the
	// fuzzy threshold, so it earns the default half credit.
	mustAnswer(t, s, "alpha::river", "misisipi")

	sum, err := s.Grade(grading.DefaultConfig())
	if err != nil {
		t.Fatalf("Grade() = %v", err)
	}

	if sum.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", sum.TotalQuestions)
	}
	if sum.TotalUnanswered != 1 {
		t.Errorf("TotalUnanswered = %d, want 1", sum.TotalUnanswered)
	}
	if sum.TotalCorrect != 1.5 {
		t.Errorf("TotalCorrect = %v, want 1.5", sum.TotalCorrect)
	}
	if sum.TotalIncorrect != 1.5 {
		t.Errorf("TotalIncorrect = %v, want 1.5", sum.TotalIncorrect)
	}
	if sum.TotalScore != 1.5 {
		t.Errorf("TotalScore = %v, want 1.5", sum.TotalScore)
	}
	if sum.Score != 50 {
		t.Errorf("Score = %v, want 50", sum.Score)
	}

	if res := s.Answers["alpha::river"].Result; res == nil {
		t.Error("Grade() did not store a result on the answer")
	} else if res.MatchType != grading.MatchPartial {
		t.Errorf("river MatchType = %q, want %q", res.MatchType, grading.MatchPartial)
	}
	if got := s.Status(); got != StatusGraded {
		t.Errorf("Status() = %q, want %q", got, StatusGraded)
	}
}

func TestGradeNoAnswers(t *testing.T) {
	reg := registryWith(t, testBank(t, "alpha", tfQuestion("q1", true), tfQuestion("q2", true)))
	s, err := Create(reg, CreateOptions{BankIDs: []string{"alpha"}})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	sum, err := s.Grade(grading.DefaultConfig())
	if err != nil {
		t.Fatalf("Grade() = %v", err)
	}
	if sum.TotalUnanswered != 2 {
		t.Errorf("TotalUnanswered = %d, want 2", sum.TotalUnanswered)
	}
	if sum.Score != 0 {
		t.Errorf("Score = %v, want 0", sum.Score)
	}
}

func TestGradeRerunsOnUpdatedAnswers(t *testing.T) {
	reg := registryWith(t, testBank(t, "alpha", tfQuestion("q1", true)))
	s, err := Create(reg, CreateOptions{BankIDs: []string{"alpha"}})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	mustAnswer(t, s, "alpha::q1", false)
	sum, err := s.Grade(grading.DefaultConfig())
	if err != nil {
		t.Fatalf("Grade() = %v", err)
	}
	if sum.Score != 0 {
		t.Errorf("Score = %v, want 0", sum.Score)
	}

	mustAnswer(t, s, "alpha::q1", true)
	sum, err = s.Grade(grading.DefaultConfig())
	if err != nil {
		t.Fatalf("Grade() = %v", err)
	}
	if sum.Score != 100 {
		t.Errorf("Score after re-grade = %v, want 100", sum.Score)
	}
	if res := s.Answers["alpha::q1"].Result; res == nil || !res.IsCorrect {
		t.Errorf("stored result = %+v, want correct", res)
	}
}

func TestGradeErrorWritesNoResults(t *testing.T) {
	// A question without a variant cannot come out of a parsed bank, but
	// a grading error must still leave every stored answer ungraded
	// rather than keeping results for the questions graded before it.
	s := &Session{
		ID: "s1",
		Questions: []SessionQuestion{
			{Key: "alpha::good", BankID: "alpha", Index: 0, Question: tfQuestion("good", true)},
			{Key: "alpha::bad", BankID: "alpha", Index: 1, Question: bank.Question{
				ID:   "bad",
				Type: bank.TypeTrueFalse,
				Text: "statement bad",
			}},
		},
		Answers: map[string]*Answer{},
	}
	mustAnswer(t, s, "alpha::good", true)
	mustAnswer(t, s, "alpha::bad", true)

	if _, err := s.Grade(grading.DefaultConfig()); err == nil {
		t.Fatal("Grade() = nil error for a question with no variant")
	}
	for key, ans := range s.Answers {
		if ans.Result != nil {
			t.Errorf("Answers[%s].Result = %+v after failed grade, want nil", key, ans.Result)
		}
	}
	if got := s.Status(); got != StatusInProgress {
		t.Errorf("Status() = %q after failed grade, want %q", got, StatusInProgress)
	}
}

func TestCompleteAndProgress(t *testing.T) {
	reg := registryWith(t, testBank(t, "alpha", tfQuestion("q1", true), tfQuestion("q2", true)))
	s, err := Create(reg, CreateOptions{BankIDs: []string{"alpha"}})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}

	if p := s.GetProgress(); p.Answered != 0 || p.Total != 2 || p.PercentComplete != 0 {
		t.Errorf("GetProgress() = %+v, want 0/2 at 0%%", p)
	}

	mustAnswer(t, s, "alpha::q1", true)
	if p := s.GetProgress(); p.Answered != 1 || p.PercentComplete != 50 {
		t.Errorf("GetProgress() = %+v, want 1/2 at 50%%", p)
	}

	s.Complete()
	if s.CompletedAt == nil {
		t.Fatal("Complete() left CompletedAt nil")
	}
	if got := s.Status(); got != StatusCompleted {
		t.Errorf("Status() = %q, want %q", got, StatusCompleted)
	}

	first := *s.CompletedAt
	s.Complete()
	if s.CompletedAt.Before(first) {
		t.Error("second Complete() moved CompletedAt backwards")
	}
}

func mustAnswer(t *testing.T, s *Session, key string, value any) {
	t.Helper()
	if err := s.UpdateAnswer(key, value); err != nil {
		t.Fatalf("UpdateAnswer(%s) = %v", key, err)
	}
}
