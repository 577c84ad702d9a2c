package constant

// Chat message roles
const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "assistant"
	ChatMessageRoleSystem = "system"
)

// Response types returned by the chat endpoint
const (
	ResponseTypeText      = "text"
	ResponseTypeCatalogue = "catalogue"
	ResponseTypeEmbed     = "embed"
)

// SystemPrompt is the base persona for every generated answer.
const SystemPrompt = "You are a helpful assistant for Harbour.Space University in Barcelona. " +
	"You help prospective students learn about programmes, admissions, scholarships, and campus life. " +
	"Be friendly, concise, and informative. When relevant, suggest they explore the programme catalogue by typing \"catalogue\"."

// GroundingInstruction wraps a retrieved page excerpt. The model must
// answer from the excerpt only.
const GroundingInstruction = "Use ONLY the following excerpt from the official Harbour.Space website to answer. " +
	"If the excerpt does not contain the answer, say you are not sure and point to the official site.\n\nExcerpt:\n"

// User-facing failure messages (mirrors of the original error payloads)
const (
	MsgAuthFailed   = "Sorry, there was an authentication error. Please contact support."
	MsgGenericError = "Sorry, I encountered an error. Please try again."
)

// EmbedPlatform pairs a URL substring with the embed platform it maps
// to. Checked in order; first hit wins.
type EmbedPlatform struct {
	Substrings []string
	Platform   string
	Response   string
}

var EmbedPlatforms = []EmbedPlatform{
	{Substrings: []string{"youtube.com", "youtu.be"}, Platform: "youtube", Response: "Here's your YouTube video:"},
	{Substrings: []string{"vimeo.com"}, Platform: "vimeo", Response: "Here's your Vimeo video:"},
	{Substrings: []string{"google.com/maps", "goo.gl/maps"}, Platform: "maps", Response: "Here's your Google Maps location:"},
}

// CatalogueKeywords short-circuit to the structured programme list.
var CatalogueKeywords = []string{"catalogue", "catalog"}

// Programme is one catalogue card.
type Programme struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

var Programmes = []Programme{
	{
		Id:          "prog1",
		Title:       "Computer Science",
		Subtitle:    "Master's Degree",
		Description: "Build cutting-edge software and systems with industry leaders",
		Image:       "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?w=400&q=80",
	},
	{
		Id:          "prog2",
		Title:       "Data Science",
		Subtitle:    "Master's Degree",
		Description: "Master AI, machine learning, and big data analytics",
		Image:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&q=80",
	},
	{
		Id:          "prog3",
		Title:       "Cyber Security",
		Subtitle:    "Master's Degree",
		Description: "Protect digital infrastructure and combat cyber threats",
		Image:       "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=400&q=80",
	},
	{
		Id:          "prog4",
		Title:       "Digital Marketing",
		Subtitle:    "Master's Degree",
		Description: "Drive growth through data-driven marketing strategies",
		Image:       "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=400&q=80",
	},
}

// RateLimitFallback is one static answer used when generation stays
// rate limited after all retries.
type RateLimitFallback struct {
	Keywords []string
	Message  string
}

var RateLimitFallbacks = []RateLimitFallback{
	{
		Keywords: []string{"programme", "programmes", "program", "course", "master", "bachelor"},
		Message:  "Harbour.Space offers Bachelor's and Master's programmes in tech, design, and entrepreneurship. Type \"catalogue\" to browse them, or visit harbour.space for full details.",
	},
	{
		Keywords: []string{"admission", "apply", "application", "enroll"},
		Message:  "Applications to Harbour.Space are submitted online at harbour.space/admissions. You'll need your CV, portfolio or transcripts, and a motivation letter. The admissions team reviews applications on a rolling basis.",
	},
	{
		Keywords: []string{"where", "location", "campus", "barcelona", "bangkok"},
		Message:  "Harbour.Space has campuses in Barcelona, Spain and Bangkok, Thailand. The Barcelona campus sits in the Poblenou innovation district.",
	},
	{
		Keywords: []string{"scholarship", "scholarships", "funding", "tuition"},
		Message:  "Harbour.Space offers merit-based scholarships and industrial partner tuition coverage. See harbour.space/scholarships for current opportunities and deadlines.",
	},
}

// RateLimitGenericFallback is used when no keyword matches.
const RateLimitGenericFallback = "I'm receiving a lot of requests right now. Please try again in a moment, or browse the programme catalogue by typing \"catalogue\"."
