package domain

// Menus holds the daily menu texts of the tracking program, keyed by program
// day (1-based). Days beyond the map get a generic fallback from MenuFor.
var Menus = map[int]string{
	1: "🍽 Меню на день 1:\n\n" +
		"Сніданок: вівсянка на воді з ягодами та горіхами.\n" +
		"Обід: запечена курка, гречка, салат зі свіжих овочів.\n" +
		"Вечеря: тушкована риба з овочами.\n\n" +
		"💧 Не забувайте пити воду протягом дня!",
	2: "🍽 Меню на день 2:\n\n" +
		"Сніданок: омлет з овочами, шматочок цільнозернового хліба.\n" +
		"Обід: сочевичний суп, салат з капусти та моркви.\n" +
		"Вечеря: сир з зеленню, кефір.\n\n" +
		"💧 Мінімум 1,5 літра води!",
	3: "🍽 Меню на день 3:\n\n" +
		"Сніданок: сирники без цукру, зелений чай.\n" +
		"Обід: індичка на пару, булгур, огірковий салат.\n" +
		"Вечеря: овочеве рагу.\n\n" +
		"💧 Пийте воду, уникайте солодких напоїв!",
}

// MenuFor returns the menu text for the given program day.
func MenuFor(day int) string {
	if m, ok := Menus[day]; ok {
		return m
	}
	return "🍽 Дотримуйтесь меню попереднього дня та пийте достатньо води."
}
