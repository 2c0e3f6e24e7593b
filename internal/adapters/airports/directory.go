// Package airports is a static IATA lookup table used for display; the
// pipeline works even when a code is not listed here.
package airports

import (
	"strings"

	"github.com/mandatedisrael/basefly/internal/domain"
)

type Directory struct {
	byCode map[string]domain.AirportInfo
}

func New() *Directory {
	d := &Directory{byCode: make(map[string]domain.AirportInfo, len(table))}
	for _, a := range table {
		d.byCode[a.Code] = a
	}
	return d
}

func (d *Directory) Lookup(code string) (domain.AirportInfo, bool) {
	a, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// Major hubs only; unknown codes simply miss.
var table = []domain.AirportInfo{
	{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "United States"},
	{Code: "EWR", Name: "Newark Liberty International Airport", City: "Newark", Country: "United States"},
	{Code: "LGA", Name: "LaGuardia Airport", City: "New York", Country: "United States"},
	{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "United States"},
	{Code: "SFO", Name: "San Francisco International Airport", City: "San Francisco", Country: "United States"},
	{Code: "ORD", Name: "O'Hare International Airport", City: "Chicago", Country: "United States"},
	{Code: "DFW", Name: "Dallas/Fort Worth International Airport", City: "Dallas", Country: "United States"},
	{Code: "ATL", Name: "Hartsfield-Jackson Atlanta International Airport", City: "Atlanta", Country: "United States"},
	{Code: "MIA", Name: "Miami International Airport", City: "Miami", Country: "United States"},
	{Code: "BOS", Name: "Logan International Airport", City: "Boston", Country: "United States"},
	{Code: "SEA", Name: "Seattle-Tacoma International Airport", City: "Seattle", Country: "United States"},
	{Code: "DEN", Name: "Denver International Airport", City: "Denver", Country: "United States"},
	{Code: "PHX", Name: "Phoenix Sky Harbor International Airport", City: "Phoenix", Country: "United States"},
	{Code: "LAS", Name: "Harry Reid International Airport", City: "Las Vegas", Country: "United States"},
	{Code: "MCO", Name: "Orlando International Airport", City: "Orlando", Country: "United States"},
	{Code: "IAD", Name: "Washington Dulles International Airport", City: "Washington", Country: "United States"},
	{Code: "IAH", Name: "George Bush Intercontinental Airport", City: "Houston", Country: "United States"},
	{Code: "YYZ", Name: "Toronto Pearson International Airport", City: "Toronto", Country: "Canada"},
	{Code: "YVR", Name: "Vancouver International Airport", City: "Vancouver", Country: "Canada"},
	{Code: "MEX", Name: "Mexico City International Airport", City: "Mexico City", Country: "Mexico"},
	{Code: "LHR", Name: "Heathrow Airport", City: "London", Country: "United Kingdom"},
	{Code: "LGW", Name: "Gatwick Airport", City: "London", Country: "United Kingdom"},
	{Code: "CDG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "France"},
	{Code: "AMS", Name: "Amsterdam Airport Schiphol", City: "Amsterdam", Country: "Netherlands"},
	{Code: "FRA", Name: "Frankfurt Airport", City: "Frankfurt", Country: "Germany"},
	{Code: "MUC", Name: "Munich Airport", City: "Munich", Country: "Germany"},
	{Code: "ZRH", Name: "Zurich Airport", City: "Zurich", Country: "Switzerland"},
	{Code: "MAD", Name: "Adolfo Suárez Madrid-Barajas Airport", City: "Madrid", Country: "Spain"},
	{Code: "BCN", Name: "Josep Tarradellas Barcelona-El Prat Airport", City: "Barcelona", Country: "Spain"},
	{Code: "FCO", Name: "Leonardo da Vinci-Fiumicino Airport", City: "Rome", Country: "Italy"},
	{Code: "IST", Name: "Istanbul Airport", City: "Istanbul", Country: "Turkey"},
	{Code: "DXB", Name: "Dubai International Airport", City: "Dubai", Country: "United Arab Emirates"},
	{Code: "DOH", Name: "Hamad International Airport", City: "Doha", Country: "Qatar"},
	{Code: "SIN", Name: "Singapore Changi Airport", City: "Singapore", Country: "Singapore"},
	{Code: "HKG", Name: "Hong Kong International Airport", City: "Hong Kong", Country: "Hong Kong"},
	{Code: "NRT", Name: "Narita International Airport", City: "Tokyo", Country: "Japan"},
	{Code: "HND", Name: "Haneda Airport", City: "Tokyo", Country: "Japan"},
	{Code: "ICN", Name: "Incheon International Airport", City: "Seoul", Country: "South Korea"},
	{Code: "SYD", Name: "Sydney Kingsford Smith Airport", City: "Sydney", Country: "Australia"},
	{Code: "MEL", Name: "Melbourne Airport", City: "Melbourne", Country: "Australia"},
	{Code: "GRU", Name: "São Paulo/Guarulhos International Airport", City: "São Paulo", Country: "Brazil"},
	{Code: "EZE", Name: "Ministro Pistarini International Airport", City: "Buenos Aires", Country: "Argentina"},
	{Code: "JNB", Name: "O.R. Tambo International Airport", City: "Johannesburg", Country: "South Africa"},
	{Code: "LOS", Name: "Murtala Muhammed International Airport", City: "Lagos", Country: "Nigeria"},
	{Code: "CAI", Name: "Cairo International Airport", City: "Cairo", Country: "Egypt"},
	{Code: "BOM", Name: "Chhatrapati Shivaji Maharaj International Airport", City: "Mumbai", Country: "India"},
	{Code: "DEL", Name: "Indira Gandhi International Airport", City: "Delhi", Country: "India"},
}
