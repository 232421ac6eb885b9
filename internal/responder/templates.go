package responder

// Reply pools. One entry is picked at random per turn for variety; the
// random source is injectable so tests can pin the choice.

var greetingTemplates = []string{
	"Hello %[1]s! I'm AgriBot, your AI farming assistant. I'm here to help with any agricultural questions you have. What's on your mind today?",
	"Hi there %[1]s! Great to meet you. I'm here to help with all your farming needs. What would you like to know?",
	"Welcome %[1]s! I'm excited to help you with your agricultural journey. What farming topic interests you today?",
}

var thanksTemplates = []string{
	"You're very welcome, %[1]s! I'm here to help whenever you need farming advice.",
	"Happy to help! Feel free to ask if you have more questions about your crops.",
	"No problem at all! I'm always here for your agricultural questions.",
}

var praiseTemplates = []string{
	"Thank you, %[1]s! I'm glad I could provide useful information. What else would you like to know?",
	"I appreciate that! I'm here to support your farming success. Any other questions?",
	"Thanks! It makes me happy when I can provide helpful farming advice. What's your next question?",
}

var acknowledgmentTemplates = []string{
	"What else can I help you with today?",
	"Any other farming questions I can answer for you?",
	"Is there another topic you'd like to discuss about agriculture?",
}

var plantingIntros = []string{
	"Let me guide you through growing %[1]s!",
	"Growing %[1]s is definitely doable - here's how:",
	"I'd be happy to help you with %[1]s cultivation.",
}

const clarificationText = "I want to help you with your farming question, but I need a bit more clarity. " +
	"Are you asking about planting, diseases, fertilizers, or something else? " +
	"Feel free to be more specific about what you'd like to know."

const plantingCropPrompt = "I'd love to help you with planting! Which crop are you interested in growing? " +
	"I can provide detailed guidance for maize, tomatoes, pepper, beans, cassava, and many others grown in Cameroon."

const diseaseCropPrompt = "I'd be happy to help identify the plant disease. Which crop is having problems? " +
	"Also, can you describe what you're seeing - like leaf color changes, spots, wilting, or other symptoms?"

const fertilizerCropPrompt = "I'd be happy to help with fertilizer recommendations! Which crop are you planning to fertilize?"

const generalHelpText = "I'm here to help with your farming questions! I can assist with crops, diseases, " +
	"fertilizers, planting procedures, weather advice, and more. What would you like to know about?"

var greetingFollowUps = []string{
	"Tell me about planting maize",
	"What diseases affect tomatoes?",
	"Best fertilizer for vegetables",
	"Weather forecast for farming",
}

var plantingPromptFollowUps = []string{
	"Tell me about planting maize",
	"How to plant tomatoes?",
	"Pepper planting guide",
	"When to plant beans?",
}

var diseasePromptFollowUps = []string{
	"My maize has yellow leaves",
	"Tomato plants are wilting",
	"Brown spots on pepper leaves",
	"Cassava leaves look diseased",
}

var clarificationFollowUps = []string{
	"How to plant [crop name]",
	"Disease problems in [crop name]",
	"Fertilizer for [crop name]",
	"Weather advice for farming",
}

var weatherFollowUps = []string{
	"Current weather conditions",
	"Best planting seasons",
	"Weather-related crop diseases",
	"Irrigation planning advice",
}

var generalHelpFollowUps = []string{
	"Planting guide for common crops",
	"Disease identification help",
	"Fertilizer recommendations",
	"Weather and farming advice",
}
