package lexicon

type forms = []string

func concept(key string, domain Domain, query, category string, en, fr, de, fa forms) Concept {
	return Concept{
		Key:      key,
		Domain:   domain,
		Query:    query,
		Category: category,
		Variants: map[string][]string{"en": en, "fr": fr, "de": de, "fa": fa},
	}
}

// defaultConcepts is ordered by scenario; declaration order breaks ties
// between hits at the same offset.
var defaultConcepts = []Concept{
	concept("espresso", DomainFood, "espresso coffee cup", "food",
		forms{"espresso"},
		forms{"expresso", "espresso"},
		forms{"espresso"},
		forms{"اسپرسو"}),
	concept("americano", DomainFood, "americano coffee", "food",
		forms{"americano"},
		forms{"allonge", "americano"},
		forms{"americano"},
		forms{"آمریکانو"}),
	concept("cappuccino", DomainFood, "cappuccino with latte art", "food",
		forms{"cappuccino"},
		forms{"cappuccino"},
		forms{"cappuccino"},
		forms{"کاپوچینو"}),
	concept("latte", DomainFood, "cafe latte cup", "food",
		forms{"latte"},
		forms{"latte"},
		forms{"latte"},
		forms{"لاته"}),
	concept("flat white", DomainFood, "flat white coffee", "food",
		forms{"flat white"},
		forms{"flat white"},
		forms{"flat white"},
		forms{"فلت وایت", "فلت وايت"}),
	concept("black coffee", DomainFood, "black coffee cup", "food",
		forms{"black coffee"},
		forms{"cafe noir"},
		forms{"schwarzer kaffee"},
		forms{"قهوه ساده", "قهوه سیاه"}),
	concept("green tea", DomainFood, "green tea cup", "food",
		forms{"green tea"},
		forms{"the vert"},
		forms{"gruner tee", "gruener tee", "grüner tee"},
		forms{"چای سبز"}),
	concept("herbal tea", DomainFood, "herbal tea cup", "food",
		forms{"herbal tea"},
		forms{"tisane"},
		forms{"krautertee", "kräutertee"},
		forms{"دمنوش", "چای گیاهی"}),
	concept("hot chocolate", DomainFood, "hot chocolate mug", "food",
		forms{"hot chocolate"},
		forms{"chocolat chaud"},
		forms{"heisse schokolade", "heiße schokolade"},
		forms{"هات چاکلت", "شکلات داغ"}),
	concept("croissant", DomainFood, "croissant pastry on plate", "food",
		forms{"croissant"},
		forms{"croissant"},
		forms{"croissant"},
		forms{"کرواسان"}),
	concept("sandwich", DomainFood, "sandwich on wooden board", "food",
		forms{"sandwich"},
		forms{"sandwich"},
		forms{"sandwich"},
		forms{"ساندویچ"}),
	concept("menu", DomainFood, "restaurant menu on table", "food",
		forms{"menu"},
		forms{"menu", "carte"},
		forms{"speisekarte"},
		forms{"منو"}),
	concept("bill", DomainFood, "restaurant bill on table", "food",
		forms{"bill", "check"},
		forms{"addition"},
		forms{"rechnung"},
		forms{"صورت حساب", "فاکتور"}),
	concept("receipt", DomainFood, "receipt on table", "food",
		forms{"receipt"},
		forms{"recu", "reçu"},
		forms{"beleg", "quittung"},
		forms{"رسید"}),
	concept("cough syrup", DomainPharmacy, "cough syrup bottle pharmacy shelf", "health",
		forms{"cough syrup"},
		forms{"sirop contre la toux"},
		forms{"hustensirup"},
		forms{"شربت سرفه"}),
	concept("pain tablets", DomainPharmacy, "pain relief tablets blister pack", "health",
		forms{"pain tablets", "painkillers"},
		forms{"comprimés contre la douleur"},
		forms{"schmerztabletten"},
		forms{"قرص مسکن"}),
	concept("nasal spray", DomainPharmacy, "nasal spray bottle", "health",
		forms{"nasal spray"},
		forms{"spray nasal"},
		forms{"nasenspray"},
		forms{"اسپری بینی"}),
	concept("thermometer", DomainPharmacy, "digital thermometer", "health",
		forms{"thermometer"},
		forms{"thermometre", "thermomètre"},
		forms{"thermometer"},
		forms{"دماسنج"}),
	concept("vitamins", DomainPharmacy, "vitamin pills bottle", "health",
		forms{"vitamins"},
		forms{"vitamines"},
		forms{"vitamine"},
		forms{"ویتامین"}),
	concept("pharmacy interior", DomainPharmacy, "pharmacy interior shelves", "health",
		forms{"pharmacy"},
		forms{"pharmacie"},
		forms{"apotheke"},
		forms{"داروخانه"}),
	concept("passport", DomainAirport, "passport on airport counter", "travel",
		forms{"passport"},
		forms{"passeport"},
		forms{"reisepass"},
		forms{"پاسپورت", "گذرنامه"}),
	concept("boarding pass", DomainAirport, "boarding pass at airport", "travel",
		forms{"boarding pass"},
		forms{"carte dembarquement", "carte d embarquement"},
		forms{"bordkarte"},
		forms{"کارت پرواز"}),
	concept("check in desk", DomainAirport, "airport check-in counter", "travel",
		forms{"check in desk", "check-in counter"},
		forms{"comptoir denregistrement", "comptoir d enregistrement"},
		forms{"check in schalter", "check-in schalter"},
		forms{"کانتر پذیرش", "گیشه پذیرش"}),
	concept("gate", DomainAirport, "airport gate sign", "travel",
		forms{"gate"},
		forms{"porte dembarquement", "porte"},
		forms{"gate"},
		forms{"گیت"}),
	concept("carry on bag", DomainAirport, "carry on bag at airport", "travel",
		forms{"carry on bag", "cabin bag"},
		forms{"bagage cabine"},
		forms{"handgepäck"},
		forms{"ساک دستی", "چمدان کابین"}),
	concept("suitcase", DomainAirport, "traveler with suitcase in airport", "travel",
		forms{"suitcase", "luggage"},
		forms{"valise"},
		forms{"koffer"},
		forms{"چمدان"}),
	concept("airport interior", DomainAirport, "modern airport interior", "travel",
		forms{"airport"},
		forms{"aeroport", "aéroport"},
		forms{"flughafen"},
		forms{"فرودگاه"}),
	concept("bank account", DomainBank, "bank counter opening account", "business",
		forms{"bank account"},
		forms{"compte bancaire"},
		forms{"bankkonto"},
		forms{"حساب بانکی"}),
	concept("debit card", DomainBank, "credit debit card closeup", "business",
		forms{"bank card", "debit card"},
		forms{"carte bancaire"},
		forms{"bankkarte"},
		forms{"کارت بانکی"}),
	concept("pin code", DomainBank, "entering pin at atm keypad", "business",
		forms{"pin code"},
		forms{"code pin"},
		forms{"pin"},
		forms{"رمز کارت", "پین"}),
	concept("bank transfer", DomainBank, "online banking transfer screen", "business",
		forms{"money transfer", "bank transfer"},
		forms{"virement"},
		forms{"überweisung", "ueberweisung"},
		forms{"انتقال وجه"}),
	concept("online banking", DomainBank, "online banking smartphone app", "business",
		forms{"online banking"},
		forms{"banque en ligne"},
		forms{"online banking"},
		forms{"بانکداری آنلاین"}),
	concept("bank interior", DomainBank, "bank interior counter", "business",
		forms{"bank"},
		forms{"banque"},
		forms{"bank"},
		forms{"بانک"}),
	concept("jacket", DomainClothing, "jacket on hanger clothing store", "fashion",
		forms{"jacket"},
		forms{"veste"},
		forms{"jacke"},
		forms{"کت", "کاپشن"}),
	concept("shirt", DomainClothing, "men shirt on hanger", "fashion",
		forms{"shirt"},
		forms{"chemise"},
		forms{"hemd"},
		forms{"پیراهن"}),
	concept("trousers", DomainClothing, "trousers on rack", "fashion",
		forms{"trousers", "pants"},
		forms{"pantalon"},
		forms{"hose"},
		forms{"شلوار"}),
	concept("dress", DomainClothing, "dress on mannequin", "fashion",
		forms{"dress"},
		forms{"robe"},
		forms{"kleid"},
		forms{"پیراهن زنانه", "لباس"}),
	concept("shoes", DomainClothing, "shoes display in store", "fashion",
		forms{"shoes"},
		forms{"chaussures"},
		forms{"schuhe"},
		forms{"کفش"}),
	concept("belt", DomainClothing, "leather belt display", "fashion",
		forms{"belt"},
		forms{"ceinture"},
		forms{"gürtel", "guertel"},
		forms{"کمربند"}),
	concept("fitting room", DomainClothing, "fitting room clothing store", "fashion",
		forms{"fitting room", "changing room"},
		forms{"cabine dessayage", "cabine d essayage"},
		forms{"umkleidekabine"},
		forms{"اتاق پرو"}),
	concept("cashier", DomainClothing, "cashier counter store", "fashion",
		forms{"cashier", "checkout"},
		forms{"caisse"},
		forms{"kasse"},
		forms{"صندوق", "صندوقدار"}),
	concept("clothing store interior", DomainClothing, "clothing store interior", "fashion",
		forms{"clothing store"},
		forms{"magasin de vetements", "magasin de vêtements"},
		forms{"kleidungsgeschaeft", "kleidungsgeschäft"},
		forms{"فروشگاه لباس"}),
	concept("bus stop", DomainDirections, "city bus stop", "transportation",
		forms{"bus stop"},
		forms{"arret de bus", "arrêt de bus"},
		forms{"bushaltestelle"},
		forms{"ایستگاه اتوبوس"}),
	concept("park", DomainDirections, "city park path", "places",
		forms{"park"},
		forms{"parc"},
		forms{"park"},
		forms{"پارک"}),
	concept("map", DomainDirections, "tourist reading city map", "people",
		forms{"map"},
		forms{"plan", "carte"},
		forms{"karte"},
		forms{"نقشه"}),
	concept("street", DomainDirections, "city street view", "places",
		forms{"street"},
		forms{"rue"},
		forms{"straße", "strasse"},
		forms{"خیابان"}),
	concept("square", DomainDirections, "town square plaza", "places",
		forms{"square", "plaza"},
		forms{"place"},
		forms{"platz"},
		forms{"میدان"}),
	concept("bridge", DomainDirections, "city bridge over river", "places",
		forms{"bridge"},
		forms{"pont"},
		forms{"brücke", "bruecke"},
		forms{"پل"}),
	concept("hotel exterior", DomainDirections, "hotel exterior entrance", "travel",
		forms{"hotel"},
		forms{"hotel", "hôtel"},
		forms{"hotel"},
		forms{"هتل"}),
	concept("fever", DomainDoctor, "fever thermometer patient", "health",
		forms{"fever"},
		forms{"fievre", "fièvre"},
		forms{"fieber"},
		forms{"تب"}),
	concept("cough", DomainDoctor, "woman coughing medical", "health",
		forms{"cough"},
		forms{"toux"},
		forms{"husten"},
		forms{"سرفه"}),
	concept("sore throat", DomainDoctor, "sore throat patient doctor", "health",
		forms{"sore throat"},
		forms{"mal de gorge"},
		forms{"halsschmerzen"},
		forms{"گلودرد"}),
	concept("stomach ache", DomainDoctor, "stomach ache person", "health",
		forms{"stomach ache", "stomachache"},
		forms{"mal de ventre"},
		forms{"bauchschmerzen"},
		forms{"دل درد", "درد معده"}),
	concept("prescription", DomainDoctor, "doctor writing prescription", "health",
		forms{"prescription"},
		forms{"ordonnance"},
		forms{"rezept"},
		forms{"نسخه پزشکی"}),
	concept("clinic interior", DomainPharmacy, "clinic waiting room", "health",
		forms{"clinic", "doctor office"},
		forms{"clinique", "cabinet medical", "cabinet médical"},
		forms{"arztpraxis", "klinik"},
		forms{"کلینیک", "مطب"}),
	concept("reservation", DomainHotel, "hotel reservation at reception", "travel",
		forms{"reservation", "booking"},
		forms{"reservation", "réservation"},
		forms{"reservierung"},
		forms{"رزرو"}),
	concept("check in", DomainHotel, "hotel check-in reception desk", "travel",
		forms{"check in", "check-in"},
		forms{"check in", "check-in"},
		forms{"einchecken"},
		forms{"پذیرش", "چک این"}),
	concept("key card", DomainHotel, "hotel key card at reception", "travel",
		forms{"key card"},
		forms{"carte de cle", "carte de clé"},
		forms{"schlüsselkarte"},
		forms{"کارت اتاق"}),
	concept("towel", DomainHotel, "two towels on bed hotel", "travel",
		forms{"towel", "towels"},
		forms{"serviette", "serviettes"},
		forms{"handtuch", "handtücher", "handtuecher"},
		forms{"حوله"}),
	concept("extra pillow", DomainHotel, "extra pillow on bed", "travel",
		forms{"extra pillow"},
		forms{"oreiller supplementaire", "oreiller supplémentaire"},
		forms{"extra kissen"},
		forms{"بالش اضافه"}),
	concept("invoice", DomainHotel, "invoice receipt hotel", "business",
		forms{"invoice"},
		forms{"facture"},
		forms{"rechnung"},
		forms{"فاکتور"}),
	concept("hotel reception", DomainHotel, "hotel reception front desk", "travel",
		forms{"hotel reception", "front desk"},
		forms{"reception hotel", "réception hôtel"},
		forms{"rezeption"},
		forms{"پذیرش هتل"}),
	concept("smartphone", DomainPhone, "smartphone display in store", "computer",
		forms{"smartphone", "mobile phone"},
		forms{"smartphone"},
		forms{"smartphone", "handy"},
		forms{"گوشی هوشمند", "موبایل"}),
	concept("sim card", DomainPhone, "sim card on hand", "computer",
		forms{"sim card", "sim"},
		forms{"carte sim"},
		forms{"sim karte", "sim-karte"},
		forms{"سیم کارت"}),
	concept("charger", DomainPhone, "phone charger on table", "computer",
		forms{"charger"},
		forms{"chargeur"},
		forms{"ladegerät", "ladegeraet"},
		forms{"شارژر"}),
	concept("cable", DomainPhone, "usb cable closeup", "computer",
		forms{"cable"},
		forms{"cable", "câble"},
		forms{"kabel"},
		forms{"کابل"}),
	concept("case", DomainPhone, "phone case wall display", "computer",
		forms{"phone case", "case"},
		forms{"coque"},
		forms{"hülle", "huelle"},
		forms{"قاب گوشی"}),
	concept("screen protector", DomainPhone, "installing screen protector", "computer",
		forms{"screen protector"},
		forms{"protection ecran", "protection d ecran", "protection d’écran"},
		forms{"schutzfolie"},
		forms{"محافظ صفحه", "گلس"}),
	concept("electronics store", DomainPhone, "electronics store interior", "computer",
		forms{"phone shop", "electronics store"},
		forms{"magasin de telephones", "magasin de téléphones"},
		forms{"handy laden", "handyladen"},
		forms{"فروشگاه موبایل"}),
	concept("parcel", DomainPost, "sending parcel at post office", "business",
		forms{"parcel", "package"},
		forms{"colis"},
		forms{"paket"},
		forms{"بسته پستی"}),
	concept("letter", DomainPost, "writing letter envelope", "business",
		forms{"letter", "mail"},
		forms{"lettre"},
		forms{"brief"},
		forms{"نامه"}),
	concept("stamp", DomainPost, "postage stamps", "business",
		forms{"stamps", "stamp"},
		forms{"timbres", "timbre"},
		forms{"briefmarken", "briefmarke"},
		forms{"تمبر"}),
	concept("label", DomainPost, "shipping label closeup", "business",
		forms{"label"},
		forms{"etiquette", "étiquette"},
		forms{"etikett"},
		forms{"برچسب"}),
	concept("registered", DomainPost, "registered mail counter", "business",
		forms{"registered mail"},
		forms{"recommande", "recommandé"},
		forms{"einschreiben"},
		forms{"سفارشی"}),
	concept("express delivery", DomainPost, "express delivery package", "transportation",
		forms{"express delivery"},
		forms{"livraison express"},
		forms{"expresslieferung"},
		forms{"پست پیشتاز"}),
	concept("post office interior", DomainPost, "post office counter interior", "business",
		forms{"post office"},
		forms{"poste"},
		forms{"post"},
		forms{"اداره پست"}),
}

// defaultModifiers are quantity, colour, size, and preference phrases that
// must not drive image selection.
var defaultModifiers = []string{
	"with milk", "without milk", "no milk", "milk",
	"with sugar", "without sugar", "no sugar", "sugar",
	"with ice", "without ice", "no ice", "ice",
	"soy milk", "oat milk", "almond milk", "lactose free", "gluten free",
	"small size", "medium size", "large size", "extra hot", "less hot",
	"with warranty", "without contract", "more storage", "online banking", "no monthly fee",
	"with priority", "with a tag", "without liquids",
	"for children", "for adults", "sans sucre", "ohne zucker", "بدون شکر",
	"blue", "black", "white", "large", "medium", "small",
}

var defaultNegators = []string{"no", "not", "without", "ohne", "sans", "بدون", "نیست", "نکن"}
