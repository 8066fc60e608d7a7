package services

// animalNames is the fixed pool of display names handed out to
// registered players. Uniqueness is enforced per day, so the pool
// size bounds how many identities can register in one day.
var animalNames = []string{
	"Panda", "Tiger", "Lion", "Elephant", "Giraffe", "Kangaroo", "Koala", "Zebra",
	"Bear", "Wolf", "Fox", "Deer", "Rabbit", "Monkey", "Gorilla", "Cheetah",
	"Leopard", "Hippo", "Rhino", "Raccoon", "Otter", "Alpaca", "Antelope", "Armadillo",
	"Badger", "Beaver", "Bison", "Boar", "Camel", "Capybara", "Chimpanzee", "Chinchilla",
	"Cougar", "Coyote", "Donkey", "Ferret", "Gazelle", "Hamster", "Hedgehog", "Jaguar",
	"Lemur", "Llama", "Lynx", "Meerkat", "Mole", "Mongoose", "Moose", "Ocelot",
	"Orangutan", "Platypus", "Porcupine", "Possum", "Puma", "Quokka", "Reindeer", "Sloth",
	"Squirrel", "Tapir", "Weasel", "Wolverine", "Wombat", "Yak", "Aardvark", "Baboon",
	"Buffalo", "Caracal", "Dingo", "Echidna", "Fennec", "Gibbon", "Hare", "Impala",
	"Jackal", "Kudu", "Loris", "Mammoth", "Numbat", "Okapi", "Pangolin", "Quoll",
	"Serval", "Tarsier", "Uakari", "Vicuna", "Wallaby", "Xerus", "Yapok", "Zebu",
	"Anteater", "Babirusa", "Civet", "Dhole", "Ermine", "Fossa", "Gemsbok", "Hyena",
	"Ibex", "Jerboa", "Klipspringer", "Lemming", "Margay", "Nyala", "Oribi", "Pudu",
	"Quagga", "Reedbuck", "Sable", "Takin", "Urial", "Vole", "Waterbuck", "Yakin",
	"Zorilla", "Addax", "Bandicoot", "Coati", "Dormouse", "Elk", "Galago", "Hartebeest",
	"Indri", "Jaguarundi", "Kinkajou", "Langur", "Markhor", "Nilgai", "Oncilla", "Paca",
	"Ratel", "Sifaka", "Tamarin", "Urchin", "Viscacha", "Wisent", "Agouti", "Binturong",
	"Eagle", "Owl", "Penguin", "Albatross", "Canary", "Cardinal", "Condor", "Crane",
	"Crow", "Dove", "Duck", "Falcon", "Finch", "Flamingo", "Goose", "Hawk",
	"Heron", "Hummingbird", "Ibis", "Jay", "Kingfisher", "Kiwi", "Lark", "Macaw",
	"Magpie", "Ostrich", "Parrot", "Peacock", "Pelican", "Pigeon", "Quail", "Raven",
	"Robin", "Seagull", "Sparrow", "Stork", "Swan", "Toucan", "Turkey", "Vulture",
	"Woodpecker", "Avocet", "Blackbird", "Cockatoo", "Dodo", "Egret", "Flycatcher", "Grouse",
	"Hoopoe", "Jackdaw", "Kestrel", "Lorikeet", "Mynah", "Nightingale", "Oriole", "Parakeet",
	"Quetzal", "Roadrunner", "Sandpiper", "Thrush", "Umbrellabird", "Vireo", "Warbler", "Xenops",
	"Yellowhammer", "Zebrafinch", "Anhinga", "Bittern", "Cuckoo", "Dunlin", "Eider", "Fulmar",
	"Godwit", "Harrier", "Jacana", "Killdeer", "Lapwing", "Merlin", "Nuthatch", "Ovenbird",
	"Petrel", "Quelea", "Redstart", "Skimmer", "Tanager", "Upupa", "Veery", "Whimbrel",
	"Yellowlegs", "Bulbul", "Cassowary", "Dickcissel", "Frigatebird", "Gallinule", "Hornbill", "Iiwi",
	"Junco", "Kookaburra", "Loon", "Motmot", "Noddy", "Osprey", "Phainopepla", "Redpoll",
	"Siskin", "Trogon", "Verdin", "Wagtail", "Wryneck", "Yellowthroat", "Zosterop", "Bobolink",
	"Cormorant", "Dipper", "Dolphin", "Shark", "Whale", "Angelfish", "Barracuda", "Clownfish",
	"Crab", "Eel", "Flounder", "Grouper", "Jellyfish", "Lobster", "Mantaray", "Narwhal",
	"Octopus", "Pufferfish", "Salmon", "Seahorse", "Starfish", "Stingray", "Swordfish", "Tuna",
	"Walrus", "Anchovy", "Blowfish", "Coelacanth", "Dugong", "Emperor", "Filefish", "Goby",
	"Halibut", "Icefish", "Jawfish", "Koi", "Lionfish", "Marlin", "Needlefish", "Oarfish",
	"Parrotfish", "Queenfish", "Remora", "Sailfish", "Triggerfish", "Unicornfish", "Viperfish", "Wrasse",
	"Yellowtail", "Zebrafish", "Anglerfish", "Boxfish", "Cardinalfish", "Damselfish", "Escolar", "Frogfish",
	"Guitarfish", "Hagfish", "Imperator", "Jackfish", "Killifish", "Lamprey", "Moonfish", "Neonfish",
	"Opah", "Pompano", "Quillfish", "Rockfish", "Scorpionfish", "Tetra", "Umbrellafish", "Velvetfish",
	"Wolffish", "Xiphias", "Yellowfin", "Zebrafin", "Albacore", "Bluegill", "Catfish", "Darter",
	"Elver", "Fangtooth", "Guppy", "Herring", "Ide", "Jewelfish", "Knifefish", "Loach",
	"Molly", "Nase", "Orbfish", "Perch", "Roach", "Snapper", "Tilapia", "Umbra",
	"Vendace", "Whiting", "Xiph", "Zander", "Alligator", "Chameleon", "Cobra", "Crocodile",
	"Frog", "Gecko", "Iguana", "Lizard", "Python", "Salamander", "Snake", "Terrapin",
	"Toad", "Tortoise", "Turtle", "Viper", "Adder", "Basilisk", "Caiman", "Dendrobate",
	"Eft", "Firefly", "Garter", "Hellbender", "Indigo", "Javelin", "Komodo", "Leatherback",
	"Mamba", "Newt", "Olm", "Pit", "Quince", "Rattler", "Skink", "Tuatara",
	"Urutu", "Varan", "Woma", "Xenopus", "Yarrow", "Asp", "Boa", "Copperhead",
	"Dugite", "Eyelash", "Fer", "Gila", "Horned", "Jacky", "Krait", "Loggerhead",
	"Monitor", "Natterjack", "Ocellated", "Puff", "Queen", "Racer", "Sidewinder", "Taipan",
	"Uromastyx", "Vine", "Water", "Xenosaurus", "Yellow", "Zonure", "Axolotl", "Blindworm",
	"Cottonmouth", "Dragon", "Fire", "Ant", "Beetle", "Butterfly", "Cricket", "Dragonfly",
	"Grasshopper", "Ladybug", "Mantis", "Moth", "Scorpion", "Spider", "Wasp", "Aphid",
	"Bee", "Caterpillar", "Damselfly", "Earwig", "Flea", "Glowworm", "Hornet", "Inchworm",
	"Junebug", "Katydid", "Lacewing", "Mayfly", "Nymph", "Oakworm", "Praying", "Queenbee",
	"Silkworm", "Termite", "Underwing", "Velvet", "Walkingstick", "Xerces", "Assassin", "Borer",
	"Cicada", "Doodlebug", "Fritillary", "Gnat", "Harvester", "Ichneumon", "Jewel",
}
