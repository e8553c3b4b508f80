package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GraphBuilder", func() {
	for _, name := range NewRegistry().Names() {
		Describe(name, func() {
			var b GraphBuilder

			BeforeEach(func() {
				var err error
				b, err = NewRegistry().GetBuilder(name)
				Expect(err).NotTo(HaveOccurred())
			})

			It("connects a close pair with the right alpha", func() {
				s := still(250, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{50, 0, 0})
				edges := b.Build(s, DefaultControlState(), nil)

				Expect(edges).To(HaveLen(1))
				Expect(edges[0].A).To(BeEquivalentTo(0))
				Expect(edges[0].B).To(BeEquivalentTo(1))
				Expect(edges[0].Alpha).To(BeNumerically("~", 2.0/3.0, 1e-5))
				Expect(s.Particles()[0].Connections).To(BeEquivalentTo(1))
				Expect(s.Particles()[1].Connections).To(BeEquivalentTo(1))
			})

			It("ignores a distant pair", func() {
				s := still(250, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{200, 0, 0})
				Expect(b.Build(s, DefaultControlState(), nil)).To(BeEmpty())
			})

			It("treats MinDistance as exclusive", func() {
				s := still(250, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{150, 0, 0})
				Expect(b.Build(s, DefaultControlState(), nil)).To(BeEmpty())
			})

			It("gives coincident particles full alpha", func() {
				s := still(250, mgl32.Vec3{7, 7, 7}, mgl32.Vec3{7, 7, 7})
				edges := b.Build(s, DefaultControlState(), nil)
				Expect(edges).To(HaveLen(1))
				Expect(edges[0].Alpha).To(BeNumerically("==", 1))
			})

			It("returns nothing with no active particles", func() {
				s := randomStore(50, 250, 1)
				s.SetActive(0)
				Expect(b.Build(s, DefaultControlState(), nil)).To(BeEmpty())
			})

			It("never touches inactive particles", func() {
				s := still(250,
					mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0},
					mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 0, 0})
				s.SetActive(2)
				edges := b.Build(s, unlimited(150), nil)
				Expect(edges).To(Equal([]Edge{{A: 0, B: 1, Alpha: edges[0].Alpha}}))
			})

			It("emits edges in ascending pair order", func() {
				s := randomStore(300, 250, 7)
				edges := b.Build(s, unlimited(80), nil)
				Expect(edges).NotTo(BeEmpty())
				for k := 1; k < len(edges); k++ {
					prev, cur := edges[k-1], edges[k]
					Expect(prev.A < cur.A || (prev.A == cur.A && prev.B < cur.B)).To(BeTrue())
				}
				for _, e := range edges {
					Expect(e.A).To(BeNumerically("<", e.B))
				}
			})

			It("connects every close pair when unlimited", func() {
				s := randomStore(120, 250, 3)
				c := unlimited(120)
				edges := b.Build(s, c, nil)

				ps := s.ActiveParticles()
				want := 0
				for i := range ps {
					for j := i + 1; j < len(ps); j++ {
						if distance(ps[i].Position, ps[j].Position) < c.MinDistance {
							want++
						}
					}
				}
				Expect(edges).To(HaveLen(want))
			})

			It("fades alpha with distance", func() {
				s := still(250,
					mgl32.Vec3{0, 0, 0}, mgl32.Vec3{30, 0, 0},
					mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 90, 0})
				edges := b.Build(s, unlimited(150), nil)

				byPair := map[[2]uint32]float32{}
				for _, e := range edges {
					byPair[[2]uint32{e.A, e.B}] = e.Alpha
				}
				Expect(byPair[[2]uint32{0, 1}]).To(BeNumerically(">", byPair[[2]uint32{2, 3}]))
				for _, e := range edges {
					Expect(e.Alpha).To(BeNumerically(">", 0))
					Expect(e.Alpha).To(BeNumerically("<=", 1))
				}
			})

			Context("with connections limited", func() {
				It("keeps every degree within the cap", func() {
					s := randomStore(400, 250, 11)
					c := DefaultControlState()
					c.ParticleCount = 400
					c.MinDistance = 200
					c.MaxConnections = 3
					edges := b.Build(s, c, nil)

					degree := make([]int, s.Active())
					for _, e := range edges {
						degree[e.A]++
						degree[e.B]++
					}
					for i, p := range s.ActiveParticles() {
						Expect(degree[i]).To(BeNumerically("<=", 3))
						Expect(p.Connections).To(BeEquivalentTo(degree[i]))
					}
				})

				It("takes pairs greedily in index order", func() {
					s := still(250,
						mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0},
						mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 0, 0})
					c := DefaultControlState()
					c.MaxConnections = 1
					edges := b.Build(s, c, nil)

					Expect(edges).To(HaveLen(2))
					Expect([2]uint32{edges[0].A, edges[0].B}).To(Equal([2]uint32{0, 1}))
					Expect([2]uint32{edges[1].A, edges[1].B}).To(Equal([2]uint32{2, 3}))
				})

				It("emits nothing when the cap is zero", func() {
					s := randomStore(100, 250, 5)
					c := DefaultControlState()
					c.MaxConnections = 0
					Expect(b.Build(s, c, nil)).To(BeEmpty())
				})
			})

			It("resets connection counts on every build", func() {
				s := randomStore(200, 250, 9)
				c := DefaultControlState()
				c.ParticleCount = 200
				first := append([]Edge(nil), b.Build(s, c, nil)...)
				second := b.Build(s, c, nil)
				Expect(second).To(Equal(first))
			})

			It("reuses the destination slice", func() {
				s := randomStore(100, 250, 4)
				dst := make([]Edge, 0, 10000)
				edges := b.Build(s, unlimited(100), dst)
				Expect(cap(edges)).To(Equal(10000))
			})
		})
	}

	Describe("grid", func() {
		DescribeTable("matches brute force",
			func(seed int64, n int, minDistance float32, limit bool, maxConn uint32) {
				c := ControlState{
					MinDistance:      minDistance,
					LimitConnections: limit,
					MaxConnections:   maxConn,
					ParticleCount:    uint32(n),
				}
				a := randomStore(n, 250, seed)
				g := randomStore(n, 250, seed)

				want := NewBruteForce().Build(a, c, nil)
				got := NewGrid().Build(g, c, nil)

				Expect(got).To(Equal(want))
				for i := range a.ActiveParticles() {
					Expect(g.Particles()[i].Connections).To(Equal(a.Particles()[i].Connections))
				}
			},
			Entry("defaults", int64(1), 500, float32(150), true, uint32(5)),
			Entry("tight cap", int64(2), 800, float32(60), true, uint32(1)),
			Entry("unlimited", int64(3), 600, float32(40), false, uint32(0)),
			Entry("smallest distance", int64(4), 2000, float32(10), true, uint32(30)),
			Entry("largest distance", int64(5), 300, float32(300), true, uint32(12)),
		)

		It("falls back to brute force on a very sparse field", func() {
			pos := []mgl32.Vec3{{0, 0, 0}, {5, 0, 0}, {1e6, 1e6, 1e6}, {-1e6, -1e6, -1e6}}
			a := still(250, pos...)
			g := still(250, pos...)
			c := unlimited(10)

			Expect(NewGrid().Build(g, c, nil)).To(Equal(NewBruteForce().Build(a, c, nil)))
		})

		It("survives non-finite positions", func() {
			g := still(250, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{float32(math.Inf(1)), 0, 0})
			Expect(NewGrid().Build(g, unlimited(50), nil)).To(BeEmpty())
		})
	})
})
