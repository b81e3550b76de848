package resolver

import (
	"github.com/lmmx/roundel/catalog"
	"github.com/lmmx/roundel/geo"
	"github.com/paulmach/orb"
)

var (
	centralSample = orb.LineString{
		{-0.2810, 51.5170}, {-0.2528, 51.5113}, {-0.2194, 51.5136}, {-0.1987, 51.5202},
		{-0.1652, 51.5259}, {-0.1350, 51.5210}, {-0.0997, 51.5152}, {-0.0638, 51.5165},
		{-0.0362, 51.5111}, {-0.0244, 51.5043}, {-0.0048, 51.5035}, {-0.0125, 51.5009},
		{-0.0199, 51.4996}, {-0.0457, 51.5068}, {-0.0742, 51.5113}, {-0.0983, 51.5142},
		{-0.1280, 51.5151}, {-0.1410, 51.5154}, {-0.1687, 51.5174}, {-0.1889, 51.5206},
		{-0.1205, 51.5152}, {-0.1025, 51.5168}, {-0.0911, 51.5155}, {-0.0765, 51.5108},
	}
	northernSample = orb.LineString{
		{-0.1938, 51.6503}, {-0.1932, 51.6302}, {-0.1858, 51.6179}, {-0.1750, 51.6071},
		{-0.1647, 51.5998}, {-0.1534, 51.5874}, {-0.1419, 51.5775}, {-0.1303, 51.5717},
		{-0.1123, 51.5656}, {-0.1051, 51.5545}, {-0.1426, 51.5302}, {-0.1385, 51.5248},
		{-0.1343, 51.5287}, {-0.1304, 51.5295}, {-0.1231, 51.5203}, {-0.1065, 51.5121},
		{-0.0882, 51.5176}, {-0.0911, 51.5155}, {-0.0924, 51.5113}, {-0.1002, 51.5044},
		{-0.1052, 51.4944},
	}
	bus88Sample = orb.LineString{
		{-0.1465, 51.5365}, {-0.1325, 51.5300}, {-0.1155, 51.5235}, {-0.0958, 51.5181},
		{-0.0879, 51.5155}, {-0.0825, 51.5127}, {-0.0754, 51.5101}, {-0.0650, 51.5088},
		{-0.0550, 51.5070}, {-0.0449, 51.5055}, {-0.0349, 51.5040}, {-0.0250, 51.5025},
		{-0.0150, 51.5010}, {-0.0050, 51.4995}, {0.0050, 51.4980}, {0.0150, 51.4965},
		{0.0250, 51.4950}, {0.0350, 51.4935}, {0.0450, 51.4920}, {0.0550, 51.4905},
	}
)

// SampleRoutes returns three simplified hand-drawn routes (two tube lines and
// the 88 bus) projected into world units.
func SampleRoutes(proj geo.Projection) []catalog.Route {
	return []catalog.Route{
		{ID: 0, Name: "central (segment 0)", LineID: "central", Type: catalog.Train, Waypoints: proj.ProjectLineString(centralSample)},
		{ID: 1, Name: "northern (segment 0)", LineID: "northern", Type: catalog.Train, Waypoints: proj.ProjectLineString(northernSample)},
		{ID: 2, Name: "88 (segment 0)", LineID: "88", Type: catalog.Bus, Waypoints: proj.ProjectLineString(bus88Sample)},
	}
}
