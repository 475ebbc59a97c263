package ats

// techKeywords is the fixed technical vocabulary the worker path filters
// missing-keyword candidates against. Multi-word entries are kept for parity
// with the curated list even though single-token candidates never match them.
var techKeywords = map[string]struct{}{
	"python": {}, "java": {}, "c++": {}, "c#": {}, "javascript": {}, "typescript": {},
	"ruby": {}, "php": {}, "swift": {}, "kotlin": {}, "go": {}, "rust": {},
	"html": {}, "css": {}, "react": {}, "angular": {}, "vue": {}, "nextjs": {},
	"node.js": {}, "django": {}, "flask": {}, "fastapi": {}, "spring": {}, "asp.net": {},
	"sql": {}, "mysql": {}, "postgresql": {}, "mongodb": {}, "redis": {},
	"elasticsearch": {}, "cassandra": {}, "dynamodb": {},
	"aws": {}, "azure": {}, "gcp": {}, "docker": {}, "kubernetes": {}, "terraform": {},
	"ansible": {}, "jenkins": {}, "gitlab ci": {}, "github actions": {},
	"git": {}, "linux": {}, "unix": {}, "bash": {}, "shell scripting": {},
	"machine learning": {}, "deep learning": {}, "nlp": {}, "computer vision": {},
	"tensorflow": {}, "pytorch": {}, "keras": {}, "scikit-learn": {}, "pandas": {}, "numpy": {},
	"data science": {}, "data analysis": {}, "big data": {}, "hadoop": {}, "spark": {},
	"kafka": {}, "airflow": {},
	"agile": {}, "scrum": {}, "kanban": {}, "jira": {}, "confluence": {},
	"rest api": {}, "graphql": {}, "grpc": {}, "microservices": {}, "serverless": {},
	"object oriented programming": {}, "functional programming": {},
	"data structures": {}, "algorithms": {},
	"communication": {}, "leadership": {}, "problem solving": {}, "teamwork": {},
	"critical thinking": {},
}

// stopWords is the English stopword list applied before keyword extraction.
var stopWords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "against": {}, "all": {},
	"also": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {},
	"at": {}, "be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {},
	"cannot": {}, "could": {}, "did": {}, "do": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "etc": {}, "few": {}, "for": {},
	"from": {}, "further": {}, "had": {}, "has": {}, "have": {}, "having": {},
	"he": {}, "her": {}, "here": {}, "hers": {}, "herself": {}, "him": {},
	"himself": {}, "his": {}, "how": {}, "if": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "its": {}, "itself": {}, "just": {}, "may": {},
	"me": {}, "might": {}, "more": {}, "most": {}, "must": {}, "my": {},
	"myself": {}, "no": {}, "nor": {}, "not": {}, "now": {}, "of": {},
	"off": {}, "on": {}, "once": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "ours": {}, "ourselves": {}, "out": {}, "over": {}, "own": {},
	"same": {}, "shall": {}, "she": {}, "should": {}, "so": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "the": {}, "their": {}, "theirs": {},
	"them": {}, "themselves": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "through": {}, "to": {}, "too": {},
	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "very": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whom": {}, "why": {}, "will": {},
	"with": {}, "within": {}, "would": {}, "you": {}, "your": {}, "yours": {},
	"yourself": {}, "yourselves": {},
}
