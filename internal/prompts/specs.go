package prompts

const classifySpec = `Respond with a JSON object matching this exact structure:

{
  "category": "<new_plan|follow_up|general_query>",
  "reason": "<explanation>"
}

Field constraints:
- category: Exactly one of new_plan, follow_up, general_query.
- reason: One sentence explaining the choice.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never add fields beyond those listed`

const extractSpec = `Respond with a JSON object matching this exact structure:

{
  "taken_courses": ["<course>"],
  "interests": ["<interest>"]
}

Field constraints:
- taken_courses: Array of strings, empty when the student names no courses.
- interests: Array of strings, empty when the student names no interests.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Both fields are required`

const enrichSpec = `Respond with a JSON array containing exactly one object per input course:

[
  {
    "course_id": 0,
    "workload": "<high|medium|low>",
    "comments": "<workload and grade analysis>"
  }
]

Field constraints:
- course_id: The class id of an input course. Every input course appears
  exactly once; never include courses that were not provided.
- workload: One of high, medium, low.
- comments: One or two sentences.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Preserve the input order`

const reviseSpec = `Respond with a JSON object matching this exact structure:

{
  "target_course_code": "<course code of the recommendation to remove>",
  "replacement_course_id": 0,
  "reason": "<why the replacement suits the student>"
}

Field constraints:
- target_course_code: The course_code of exactly one current recommendation.
- replacement_course_id: The course_id of one eligible replacement.
- reason: One or two sentences.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never pick a course outside the eligible list`

const respondSpec = `Respond in plain text. Keep the answer under 200 words. Do not wrap the answer in JSON or markdown code fences.`
