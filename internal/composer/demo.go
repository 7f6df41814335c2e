package composer

import "github.com/Juicern/remagik/internal/channel"

// DemoTones are the tones offered to anonymous users on the channels of the
// free trial.
func DemoTones() map[channel.Channel]Tone {
	return map[channel.Channel]Tone{
		channel.LinkedInPost: {
			Prompt:  "Professional and engaging tone for LinkedIn posts. Use clear, accessible language that encourages professional discussion and networking.",
			Example: "Just finished an interesting project with our team. Working across different departments really showed me how important clear communication is for getting things done. What approaches have worked well for you when collaborating with different teams?",
		},
		channel.Slack: {
			Prompt:  "Friendly and collaborative tone for team communication. Be clear and helpful while maintaining a casual, approachable style.",
			Example: "Hi team! Just got off the call with the client and they really liked the new features. Quick update - we are planning to deploy on Friday afternoon. Let me know if you have any questions. Thanks everyone for the great work!",
		},
		channel.Email: {
			Prompt:  "Professional and courteous tone for business email. Use proper structure, be respectful, and maintain appropriate business formality.",
			Example: "Hi Sarah,\n\nI hope you are doing well. I wanted to follow up on our conversation about the Q4 project timeline. After reviewing everything, I think we can have the first phase ready by November 15th.\n\nPlease let me know if you have any questions or if you would like to set up a call to discuss this further.\n\nBest regards,\nAlex",
		},
	}
}
