package usecase

import (
	"fmt"

	"github.com/shadtorh/jobconnect/internal/model"
)

// buildAnalysisPrompt composes the instruction string sent to the completion
// provider. It is pure: the same job context, candidate name, and
// conversation always produce the same prompt.
func buildAnalysisPrompt(job model.JobContext, candidateName, conversation string) string {
	return fmt.Sprintf(`You are a critical interview assessor. Analyze the following interview conversation between an Agent (interviewer) and a Candidate for the %s position at %s.

Interview Context:
- Position: %s
- Company: %s
- Job Description: %s
- Candidate: %s

Conversation:
--- START CONVERSATION ---
%s
--- END CONVERSATION ---

Instructions:
1. Evaluate the candidate's performance based ONLY on evidence within the conversation above. Do not invent qualifications that were not discussed.
2. Provide ratings from 1 to 10 for: technicalSkills, communication, problemSolving, experience. Use this rubric:
   - 1-3: below expectations
   - 4-6: basic competence
   - 7-8: strong performance
   - 9-10: exceptional performance
   A score of exactly 5 must reflect genuinely mixed evidence, not serve as a default when you are unsure.
3. Write a concise summary (2-3 sentences) of the interview interaction.
4. Choose a recommendation, exactly one of: "Highly Recommended", "Recommended", "Consider with Reservations", "Not Recommended".
5. Write a brief recommendationMsg (1-2 sentences) explaining the recommendation, referring to the candidate by name.
6. Respond ONLY with a valid JSON object matching this exact structure. No markdown fences, no text before or after the JSON object:
{
  "rating": {
    "technicalSkills": number,
    "communication": number,
    "problemSolving": number,
    "experience": number
  },
  "summary": string,
  "recommendation": string,
  "recommendationMsg": string
}`,
		job.Title, job.CompanyName,
		job.Title, job.CompanyName, job.Description, candidateName,
		conversation,
	)
}

// buildQuestionsPrompt asks the provider for five interview questions
// tailored to the job.
func buildQuestionsPrompt(job model.JobContext) string {
	return fmt.Sprintf(`As an AI interview assistant, generate 5 professional interview questions for a %s position at %s.

Job Description: %s

The questions should:
1. Be relevant to the specific job skills and requirements
2. Assess both technical skills and soft skills
3. Include a mix of behavioral and situational questions
4. Be clear and concise

Respond ONLY with a JSON array of 5 strings containing just the questions. No markdown fences, no text before or after the array.`,
		job.Title, job.CompanyName, job.Description,
	)
}

// fallbackQuestions is the static question set returned when the provider
// fails. Questions are safe to fall back on; evaluations are not.
func fallbackQuestions(job model.JobContext) []string {
	return []string{
		fmt.Sprintf("Tell me about your experience related to %s.", job.Title),
		"What are your greatest strengths and how do they apply to this role?",
		"Describe a challenging situation you faced and how you resolved it.",
		fmt.Sprintf("Why are you interested in working at %s?", job.CompanyName),
		"What questions do you have about the position?",
	}
}
