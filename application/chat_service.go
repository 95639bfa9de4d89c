package application

import "strings"

// chatEntry maps trigger keywords to one canned answer.
type chatEntry struct {
	keywords []string
	answer   string
}

// ChatService is the lead-generation chatbot: a linear keyword scan over a
// small knowledge base, first match wins. No session state is kept.
type ChatService struct {
	knowledgeBase []chatEntry
	fallback      string
	greeting      string
}

// NewChatService builds the chatbot with the default knowledge base.
func NewChatService() *ChatService {
	return &ChatService{
		greeting: "Hello! I'm the virtual assistant. Ask me about our properties, services, fees or schedules.",
		fallback: "I don't have an answer for that yet. An advisor can help you directly through our contact channels.",
		knowledgeBase: []chatEntry{
			{
				keywords: []string{"hola", "hello", "hi", "buenos", "buenas", "good morning"},
				answer:   "Hello! How can I help you today? You can ask about properties for sale or rent, our management service, fees or schedules.",
			},
			{
				keywords: []string{"quienes son", "who are you", "about", "que es"},
				answer:   "We are a real-estate agency managing sales and rentals, with full property administration for owners.",
			},
			{
				keywords: []string{"servicios", "services", "what do you do", "hacen"},
				answer:   "We offer property sales, rentals and full administration: tenant screening, collection, maintenance coordination and monthly settlement.",
			},
			{
				keywords: []string{"ciudades", "cities", "donde", "where", "operan", "operate"},
				answer:   "We operate mainly in Manizales and the Coffee Region, with selected listings in other cities.",
			},
			{
				keywords: []string{"contacto", "contact", "telefono", "phone", "email", "direccion", "address", "llamar"},
				answer:   "You can reach us by phone or WhatsApp during business hours, or leave your details and an advisor will call you back.",
			},
			{
				keywords: []string{"horario", "hours", "open", "atienden", "abren"},
				answer:   "We are open Monday through Friday from 8:00 to 18:00 and Saturdays from 9:00 to 13:00.",
			},
			{
				keywords: []string{"honorarios", "costo", "tarifa", "fees", "cost", "rate", "comision"},
				answer:   "Our administration fee is a percentage of the monthly rent, agreed in the management contract. Sales commissions follow market practice.",
			},
			{
				keywords: []string{"administracion", "management", "incluye", "includes"},
				answer:   "The administration service includes tenant screening, rent collection, repair coordination and a monthly owner settlement.",
			},
			{
				keywords: []string{"reparaciones", "repairs", "locativas"},
				answer:   "Minor locative repairs are the tenant's responsibility; structural issues are the owner's. We coordinate quotes and work for both.",
			},
			{
				keywords: []string{"cuando pagan", "payment", "pago", "when do i get paid"},
				answer:   "Owner settlements are paid within the first ten days of each month, after rent collection.",
			},
			{
				keywords: []string{"arriendo", "rent", "alquiler", "arrendar"},
				answer:   "You can browse properties for rent in the listings section and filter by city, price and features. Want an advisor to help you choose?",
			},
			{
				keywords: []string{"venta", "sale", "comprar", "buy", "vender", "sell"},
				answer:   "We list properties for sale and also help owners sell. If you want to offer your property, leave your details and we will appraise it.",
			},
			{
				keywords: []string{"gracias", "thanks", "thank you"},
				answer:   "You're welcome! Anything else I can help you with?",
			},
		},
	}
}

// Greeting returns the opening bot message.
func (s *ChatService) Greeting() string {
	return s.greeting
}

// Reply returns the canned answer whose keywords first match the input,
// or the fallback when nothing matches.
func (s *ChatService) Reply(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return s.fallback
	}
	for _, entry := range s.knowledgeBase {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.answer
			}
		}
	}
	return s.fallback
}
