package retrieval

// Synonyms maps a question token to the technology aliases it should also match.
var Synonyms = map[string][]string{
	"aws":        {"ec2", "eks", "s3", "lambda", "iam", "cloudwatch", "eventbridge", "dynamodb", "sqs"},
	"amazon":     {"aws"},
	"gcp":        {"gke", "bigquery", "pubsub", "cloud run", "gcs"},
	"google":     {"gcp", "gemini"},
	"azure":      {"aks", "cosmos", "blob", "functions"},
	"cloud":      {"aws", "gcp", "azure", "serverless"},
	"ai":         {"ml", "llm", "rag", "agent", "agents", "openai", "gemini", "embeddings", "prompt"},
	"ml":         {"machine learning", "model", "training", "inference"},
	"llm":        {"gpt", "gemini", "openai", "rag", "prompt"},
	"genai":      {"llm", "rag", "openai", "gemini"},
	"k8s":        {"kubernetes", "helm", "eks", "gke", "aks"},
	"kubernetes": {"k8s", "helm", "containers"},
	"containers": {"docker", "kubernetes"},
	"docker":     {"containers", "compose"},
	"devops":     {"ci", "cd", "terraform", "github actions", "docker", "kubernetes"},
	"infra":      {"terraform", "kubernetes", "aws"},
	"backend":    {"api", "apis", "services", "microservices", "go", "database"},
	"frontend":   {"react", "typescript", "css", "ui"},
	"fullstack":  {"frontend", "backend", "react", "api"},
	"database":   {"postgresql", "postgres", "sql", "redis", "dynamodb", "mongodb"},
	"databases":  {"postgresql", "postgres", "sql", "redis", "dynamodb", "mongodb"},
	"sql":        {"postgresql", "postgres", "mysql"},
	"go":         {"golang"},
	"golang":     {"go"},
	"js":         {"javascript", "node"},
	"javascript": {"js", "node", "typescript"},
	"ts":         {"typescript"},
	"typescript": {"ts", "javascript"},
	"python":     {"django", "fastapi", "flask"},
	"react":      {"nextjs", "frontend", "hooks"},
	"mobile":     {"ios", "android", "react native", "flutter"},
	"data":       {"kafka", "etl", "pipeline", "analytics", "sql"},
	"events":     {"kafka", "eventbridge", "sqs", "pubsub"},
	"security":   {"iam", "oauth", "auth", "encryption"},
	"testing":    {"tests", "unit", "integration", "e2e"},
	"leadership": {"lead", "mentoring", "mentored", "owns", "managed"},
}
