package cost

// Regional cost tables. These back the estimator whenever no live rent
// source is available, and always supply the non-housing expense model.

// stateCostIndex maps a state to its cost-of-living index relative to the
// national average (1.0).
var stateCostIndex = map[string]float64{
	"NY": 1.35,
	"CA": 1.40,
	"HI": 1.50,
	"MA": 1.30,
	"WA": 1.25,
	"NJ": 1.30,
	"CT": 1.28,
	"FL": 0.98,
	"TX": 0.91,
	"GA": 0.89,
	"NC": 0.90,
	"OH": 0.85,
	"MI": 0.86,
	"IL": 0.95,
	"PA": 0.93,
	"AZ": 0.95,
	"CO": 1.05,
	"OR": 1.10,
}

const defaultCostIndex = 1.0

// nationalMedianRent is the national median rent by bedroom count.
var nationalMedianRent = map[int]float64{
	0: 950,
	1: 1100,
	2: 1400,
	3: 1800,
	4: 2200,
}

const defaultMedianRent = 1400

// zipRange assigns a numeric ZIP interval to a state. Ranges are checked
// in order and the first match wins.
type zipRange struct {
	state  string
	lo, hi int
}

var zipRanges = []zipRange{
	{"NY", 10000, 14999},
	{"CA", 90000, 96199},
	{"TX", 75000, 79999},
	{"TX", 73000, 73999},
	{"TX", 77000, 77999},
	{"FL", 32000, 34999},
	{"IL", 60000, 62999},
	{"PA", 15000, 19699},
	{"OH", 43000, 45999},
	{"GA", 30000, 31999},
	{"GA", 39800, 39999},
	{"NC", 27000, 28999},
	{"MI", 48000, 49999},
	{"NJ", 7000, 8999},
	{"VA", 20000, 24699},
	{"WA", 98000, 99499},
	{"AZ", 85000, 86599},
	{"MA", 1000, 2799},
	{"TN", 37000, 38599},
	{"IN", 46000, 47999},
	{"MO", 63000, 65899},
	{"MD", 20600, 21999},
	{"WI", 53000, 54999},
	{"CO", 80000, 81699},
	{"MN", 55000, 56799},
}

const defaultState = "NY"

// metroPrefixes are ZIP prefixes of major metro areas that carry a rent
// premium.
var metroPrefixes = []string{
	// New York
	"100", "101", "102", "103", "104", "105", "106", "107", "108", "109",
	// Los Angeles
	"900", "901", "902", "903", "904", "905", "906", "907", "908",
	// San Francisco
	"941", "942", "943", "944", "945",
	// Chicago
	"606", "607", "608",
	// Boston
	"021", "022",
	// Seattle
	"981", "982",
	// Miami
	"331", "332", "333",
	// DC
	"200", "201", "202",
	// Atlanta
	"303", "304",
	// Austin
	"787",
}

const metroRentPremium = 1.25

// expenseFractions model non-housing categories as fractions of rent.
var expenseFractions = map[Category]float64{
	CategoryUtilities:      0.12,
	CategoryGroceries:      0.30,
	CategoryTransportation: 0.20,
	CategoryHealthcare:     0.15,
	CategoryEntertainment:  0.10,
	CategoryMiscellaneous:  0.08,
}

// nationalMedianMonthly is the US median total monthly expense figure the
// affordability ladder is anchored to.
const nationalMedianMonthly = 3000.0
