package ai

import (
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

const questionSystemPrompt = `You are an AI trained to generate technical interview questions and answers.
Only return valid JSON. Do NOT add any extra text, markdown or explanation around it.`

const questionUserPrompt = `Task:
  - Role: {{.role}}
  - Candidate Experience: {{.experience}} years
  - Focus Topics: {{.topics}}
  - Write {{.count}} interview questions.
  - For each answer that needs a code example, add a small code block inside.
  - Keep formatting very clean.
  - Return a pure JSON array like:
    [
      {
        "question": "Question here?",
        "answer": "Answer here."
      }
    ]
  - Important: Do NOT add any extra text. Only return valid JSON.`

const explanationSystemPrompt = `You are an AI trained to generate explanations for a given interview question.
Only return valid JSON. Do NOT add any extra text, markdown or explanation around it.`

const explanationUserPrompt = `Task:
  - Explain the following interview question and its concept in depth as if you're teaching a beginner developer.
  - Question: "{{.question}}"
  - After the explanation, provide a short and clear title that summarises the concept for the article or page header.
  - If the explanation includes a code example, provide a small code block.
  - Keep the formatting very clean and clear.
  - Return a pure JSON object like:
    {
      "title": "Short title here",
      "explanation": "Explanation here."
    }
  - Important: Do NOT add any extra text. Only return valid JSON.`

func questionTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(questionSystemPrompt),
		schema.UserMessage(questionUserPrompt),
	)
}

func explanationTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(explanationSystemPrompt),
		schema.UserMessage(explanationUserPrompt),
	)
}
