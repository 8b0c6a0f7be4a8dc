package docs

// @title ToyoQuest API
// @version 1.0
// @description Vehicle recommendation backend: collects a buyer's financial profile and style-quiz selections, scrapes Toyota model pages into a CSV catalog, and asks a generative-language model for ranked vehicle recommendations.

// @contact.name API Support

// @host localhost:5000
// @BasePath /
// @schemes http
