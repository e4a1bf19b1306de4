package quiz

import "fmt"

var difficultyInstructions = map[string]string{
	DifficultyEasy:   "Focus on basic facts, definitions, and simple recall. Questions should test fundamental understanding.",
	DifficultyMedium: "Include application, comparison, and analysis questions. Test deeper comprehension and connections.",
	DifficultyHard:   "Create challenging questions requiring critical thinking, synthesis, and complex reasoning.",
}

var typeInstructions = map[string]string{
	TypeMultipleChoice: `Create multiple choice questions with exactly 4 options each. Ensure:
- Only one option is clearly correct
- Distractors are plausible but incorrect
- Options are roughly equal in length
- Avoid "all of the above" or "none of the above"`,
	TypeTrueFalse: `Create true/false questions that:
- Test specific facts or concepts
- Avoid ambiguous statements
- Include both true and false correct answers
- Choices should be exactly ["True", "False"]`,
}

// buildPrompt constructs the generation prompt embedding the summary text
// and the quiz configuration. The model must answer with a bare JSON object
// holding a "questions" array.
func buildPrompt(cfg Config, summary string) string {
	return fmt.Sprintf(`You are an expert educational assessment creator. Generate a high-quality quiz based STRICTLY on the provided content.

CONTENT TO USE:
---
%s
---

REQUIREMENTS:
- Generate exactly %d questions
- Difficulty level: %s - %s
- Question type: %s
- %s

QUALITY STANDARDS:
- Questions must be directly answerable from the provided content
- Avoid questions requiring external knowledge
- Each question should test a different concept/fact
- Provide clear, educational explanations for correct answers
- Use varied question stems and formats

OUTPUT FORMAT (JSON only, no markdown):
{
  "questions": [
    {
      "id": "unique_id_string",
      "question": "Clear, specific question text",
      "choices": ["Option A", "Option B", "Option C", "Option D"],
      "correct": "Exact text of correct option",
      "explanation": "Clear explanation of why this answer is correct and others are wrong",
      "difficulty": "%s",
      "concept": "Main concept being tested"
    }
  ]
}

Generate the quiz now:`,
		summary,
		cfg.NumQuestions,
		cfg.Difficulty, difficultyInstructions[cfg.Difficulty],
		cfg.QuestionType,
		typeInstructions[cfg.QuestionType],
		cfg.Difficulty,
	)
}
