package index

// englishStopwords is the standard English stopword set used by the
// field analyzers.
var englishStopwords = []string{
	"a", "about", "above", "after", "again", "all", "an", "and", "any",
	"are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "did", "do", "does", "doing",
	"down", "during", "each", "few", "for", "from", "further", "had",
	"has", "have", "having", "he", "her", "here", "hers", "him", "his",
	"how", "i", "if", "in", "into", "is", "it", "its", "just", "more",
	"most", "my", "no", "nor", "not", "now", "of", "off", "on", "once",
	"only", "or", "other", "our", "out", "over", "own", "same", "she",
	"should", "so", "some", "such", "than", "that", "the", "their", "them",
	"then", "there", "these", "they", "this", "those", "through", "to",
	"too", "under", "until", "up", "very", "was", "we", "were", "what",
	"when", "where", "which", "while", "who", "whom", "why", "will",
	"with", "you", "your",
}

// russianStopwords covers catalog entries written in Russian.
var russianStopwords = []string{
	"а", "без", "более", "бы", "был", "была", "были", "было", "быть",
	"в", "вам", "вас", "весь", "во", "вот", "все", "всего", "всех", "вы",
	"где", "да", "даже", "для", "до", "его", "ее", "ей", "ему", "если",
	"есть", "еще", "же", "за", "и", "из", "или", "им", "их", "к", "как",
	"ко", "когда", "кто", "ли", "либо", "мне", "может", "мы", "на", "надо",
	"наш", "не", "него", "нее", "нет", "ни", "них", "но", "ну", "о", "об",
	"однако", "он", "она", "они", "оно", "от", "очень", "по", "под", "при",
	"с", "со", "так", "также", "такой", "там", "те", "тем", "то", "того",
	"тоже", "той", "только", "том", "ты", "у", "уже", "хотя", "чего",
	"чей", "чем", "что", "чтобы", "чье", "эта", "эти", "это", "я",
}

// domainStopwords lists generic pedagogical terms that appear in nearly
// every catalog entry and therefore carry no discriminating signal.
// Both English and Russian variants are excluded from matching.
var domainStopwords = []string{
	// English
	"analysis", "application", "area", "basis", "characteristic",
	"concept", "course", "creation", "data", "development", "discipline",
	"design", "element", "feature", "goal", "knowledge", "laboratory",
	"material", "method", "model", "principle", "process", "production",
	"professional", "property", "quality", "research", "result",
	"scientific", "section", "skill", "solution", "structure", "student",
	"study", "system", "task", "technology", "theory", "work",

	// Russian
	"алгоритм", "анализ", "деятельность", "дисциплина", "задача",
	"знание", "изучение", "исследование", "качество", "курс",
	"лабораторный", "материал", "метод", "модель", "навык", "наука",
	"научный", "область", "обеспечение", "основа", "особенность",
	"построение", "принцип", "применение", "проектирование",
	"производство", "процесс", "работа", "развитие", "раздел",
	"разработка", "расчет", "решение", "свойство", "система", "создание",
	"структура", "студент", "теория", "технология", "управление",
	"характеристика", "цель", "элемент",
}
