package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"studypal-backend/internal/quiz"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
	optionsPerQuestion   = 4
)

type GeneratorService struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewGeneratorService(apiKey, apiURL, model string, timeout time.Duration) *GeneratorService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(apiURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &GeneratorService{client: client, apiKey: apiKey, model: model}
}

func (s *GeneratorService) IsAvailable() bool {
	return s.apiKey != ""
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

const generatorSystemPrompt = "You are an expert educational AI that generates high-quality quiz questions. Always respond with valid JSON only."

var difficultyInstructions = map[quiz.Difficulty]string{
	quiz.Easy:   "Create basic, foundational questions suitable for beginners. Focus on definitions and simple concepts. Use clear, straightforward language.",
	quiz.Medium: "Create intermediate questions that require understanding and application of concepts. Include scenario-based questions.",
	quiz.Hard:   "Create advanced questions that require deep analysis, synthesis, and critical thinking. Include complex scenarios and edge cases.",
}

func generatorPrompt(topic string, d quiz.Difficulty, n int) string {
	return fmt.Sprintf(`Generate exactly %d multiple choice questions about %q.

Difficulty Level: %s
Instructions: %s

Respond with ONLY a JSON object of the form:
{"questions": [{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": "...", "explanation": "..."}]}

Requirements:
- Exactly 4 distinct options per question
- The correct_answer must EXACTLY match one of the options
- Provide thorough explanations`, n, topic, d, difficultyInstructions[d])
}

// Generate returns n questions about topic. When the AI backend is not
// configured or fails, deterministic template questions are returned instead.
func (s *GeneratorService) Generate(ctx context.Context, topic string, d quiz.Difficulty, n int) ([]quiz.Question, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", d)
	}
	if n <= 0 {
		n = DefaultQuestionCount
	}
	if n > MaxQuestionCount {
		n = MaxQuestionCount
	}

	if s.IsAvailable() {
		questions, err := s.generateAI(ctx, topic, d, n)
		if err == nil {
			log.Printf("generator: %d questions about %q (%s)", len(questions), topic, d)
			return questions, nil
		}
		log.Printf("generator: AI generation failed, using templates: %v", err)
	}
	return MockQuestions(topic, d, n), nil
}

func (s *GeneratorService) generateAI(ctx context.Context, topic string, d quiz.Difficulty, n int) ([]quiz.Question, error) {
	var out chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: s.model,
			Messages: []chatMessage{
				{Role: "system", Content: generatorSystemPrompt},
				{Role: "user", Content: generatorPrompt(topic, d, n)},
			},
			MaxTokens:      2000,
			Temperature:    0.7,
			ResponseFormat: map[string]string{"type": "json_object"},
		}).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode(), out.Error.Message)
		}
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("empty response from AI")
	}
	return parseGeneratedQuestions(out.Choices[0].Message.Content)
}

func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// parseGeneratedQuestions accepts either a bare array or {"questions": [...]}.
func parseGeneratedQuestions(content string) ([]quiz.Question, error) {
	content = cleanJSONContent(content)

	var raw []generatedQuestion
	if strings.HasPrefix(content, "[") {
		if err := json.Unmarshal([]byte(content), &raw); err != nil {
			return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
		}
	} else {
		var wrapped struct {
			Questions []generatedQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
			return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
		}
		raw = wrapped.Questions
	}
	if len(raw) == 0 {
		return nil, errors.New("no questions generated")
	}

	questions := make([]quiz.Question, 0, len(raw))
	for i, g := range raw {
		if len(g.Options) != optionsPerQuestion {
			return nil, fmt.Errorf("question %d must have exactly %d options", i, optionsPerQuestion)
		}
		correct := g.CorrectAnswer
		if !contains(g.Options, correct) {
			log.Printf("generator: correct answer not in options for question %d, using first option", i)
			correct = g.Options[0]
		}
		q, err := quiz.NewQuestion(g.Question, g.Options, correct, g.Explanation)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type mockTemplates struct {
	questions    []string
	explanations []string
}

var mockBank = map[quiz.Difficulty]mockTemplates{
	quiz.Easy: {
		questions: []string{
			"What is the basic definition of %s?",
			"Which of the following is a fundamental concept in %s?",
			"What is the primary purpose of %s?",
			"In %s, what does the term 'basic principle' refer to?",
			"Which statement best describes %s?",
		},
		explanations: []string{
			"This is a foundational concept that forms the basis of understanding.",
			"Understanding basic definitions is crucial for building knowledge.",
			"This fundamental principle is essential for beginners.",
			"Core concepts help establish a strong foundation.",
			"Basic knowledge serves as the building block for advanced topics.",
		},
	},
	quiz.Medium: {
		questions: []string{
			"How would you apply %s in a real-world scenario?",
			"What is the relationship between %s and its applications?",
			"Which approach is most effective when dealing with %s?",
			"In the context of %s, what strategy would you use?",
			"What are the implications of %s in practice?",
		},
		explanations: []string{
			"This requires understanding and application of concepts.",
			"Practical application demonstrates deeper comprehension.",
			"This connects theory with real-world implementation.",
			"Understanding relationships shows intermediate knowledge.",
			"Strategic thinking is essential at this level.",
		},
	},
	quiz.Hard: {
		questions: []string{
			"Analyze the complex implications of %s in advanced scenarios.",
			"How would you critically evaluate different approaches to %s?",
			"What are the potential limitations and advantages of %s?",
			"Synthesize multiple concepts: How does %s integrate with other advanced topics?",
			"What would be the optimal solution when combining %s with competing priorities?",
		},
		explanations: []string{
			"This requires critical thinking and synthesis of multiple concepts.",
			"Advanced analysis involves evaluating trade-offs and implications.",
			"Deep understanding comes from integrating multiple perspectives.",
			"Expert-level questions demand sophisticated reasoning.",
			"This challenges your ability to think at a system level.",
		},
	},
}

// MockQuestions builds up to five template questions. The correct option
// rotates through the four positions.
func MockQuestions(topic string, d quiz.Difficulty, n int) []quiz.Question {
	bank, ok := mockBank[d]
	if !ok {
		bank = mockBank[quiz.Medium]
	}
	if n > len(bank.questions) {
		n = len(bank.questions)
	}

	questions := make([]quiz.Question, 0, n)
	for i := 0; i < n; i++ {
		options := []string{
			"Correct understanding of " + topic,
			"Common misconception about " + topic,
			"Partially correct interpretation of " + topic,
			"Incorrect approach to " + topic,
		}
		correct := options[0]
		idx := i % len(options)
		options[0], options[idx] = options[idx], options[0]

		questions = append(questions, quiz.Question{
			Text:          fmt.Sprintf(bank.questions[i], topic),
			Options:       options,
			CorrectAnswer: correct,
			Explanation:   bank.explanations[i],
		})
	}
	return questions
}
